// Package capture grabs single still frames from live webcam streams.
//
// Beach webcams publish HLS streams; the detection tools want one frame at
// a time. Capture shells out to ffmpeg rather than linking a media stack:
// the grab is a one-shot external process bounded by a timeout, and every
// failure mode (ffmpeg missing, stream timeout, no decodable frame) maps
// to a distinct sentinel error so callers can report structured failures.
package capture

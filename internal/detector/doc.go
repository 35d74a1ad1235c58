// Package detector provides the neural-network person detector backing
// the crowd counting pipeline.
//
// The real backend runs a YOLO-family ONNX model through OpenCV's DNN
// module via gocv, which needs cgo and a system OpenCV install. It is
// therefore gated behind the "gocv" build tag, mirroring how the clock
// reader gates its Tesseract binding. Default builds get a stub whose
// constructor returns ErrUnavailable, and the command-line tools fall
// back to pixel-density estimation when they see it.
package detector

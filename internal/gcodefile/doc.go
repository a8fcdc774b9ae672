// Package gcodefile reads G-code files into lines and writes them back.
//
// Lines keep their original terminators, so a line that is not rewritten is
// written back byte for byte. Writes go to a temporary file in the target's
// directory which is renamed over the target only once it is complete; an
// interrupted run leaves the original file untouched.
package gcodefile

// Package bigtext finds large files that are plain text or compress well.
//
// It walks directory trees using fastwalk, skips files below a size
// threshold and feeds the leading bytes of the remaining files to a
// classifier. Extensions that repeatedly fail classification are
// throttled so that directories full of binary files are not read.
package bigtext

// Package report renders traces as plain-text tables and charts for the
// command line.
package report

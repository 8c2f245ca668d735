// Package api handles incoming HTTP requests for the task service: path
// parameter parsing, request decoding and validation, and response
// formatting. It translates HTTP concerns into TaskStore operations.
package api

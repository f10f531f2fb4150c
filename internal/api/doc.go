// Package api handles incoming HTTP requests for the board: request
// decoding and validation, calls into the column and task services, and
// response formatting. Errors are translated to status codes by
// MapErrorToStatusCode and never expose internal details.
package api

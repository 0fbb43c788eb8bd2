package agent

import "errors"

// ErrInvalidArgument marks malformed tool input: empty or oversized titles,
// unparseable due dates, arguments that fail strict JSON decoding. Errors
// wrapping it stay inside the tool boundary and are surfaced to the model as
// a tool-execution error string, never as a failure of the HTTP request.
var ErrInvalidArgument = errors.New("invalid argument")

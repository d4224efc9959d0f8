package model

// DecodeError records a decode failure for an input line.
type DecodeError struct {
	Line     int    `json:"line"`
	Selector string `json:"selector,omitempty"`
	Calldata string `json:"calldata"`
	Error    string `json:"error"`
}

package model

// DecodedCall is a decoded liquidity calldata payload tagged with its method.
type DecodedCall struct {
	Line     int             `json:"line,omitempty"`
	Method   string          `json:"method"`
	Selector string          `json:"selector"`
	Decoded  interface{}     `json:"decoded"`
	Raw      *RawCalldataRef `json:"raw,omitempty"`
}

// RawCalldataRef keeps the original payload for traceability.
type RawCalldataRef struct {
	Calldata string `json:"calldata"`
}

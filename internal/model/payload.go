package model

import (
	"encoding/json"
)

// Payload is a journal entry for a calldata string built by the CLI.
type Payload struct {
	Method    string `json:"method"`
	Selector  string `json:"selector"`
	PoolID    string `json:"pool_id"`
	Calldata  string `json:"calldata"`
	Deadline  string `json:"deadline"`
	CreatedAt string `json:"created_at"`
}

// MarshalJSON ensures Payload is encoded with stable field names.
func (p Payload) MarshalJSON() ([]byte, error) {
	type Alias Payload
	return json.Marshal(Alias(p))
}

// UnmarshalJSON decodes a Payload from JSON.
func (p *Payload) UnmarshalJSON(data []byte) error {
	type Alias Payload
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Payload(a)
	return nil
}

package goform

import (
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// MarshalValue encodes a decoded tree as JSON. Files become objects with
// filename/stored_as/size, Bytes become base64 strings and non-finite Floats
// become the strings "NaN", "+Inf" or "-Inf".
func MarshalValue(v Value) ([]byte, error) {
	return json.Marshal(v)
}

// Bind projects a decoded map onto T through its JSON representation, so
// struct tags drive the mapping:
//
//	type Upload struct {
//	    Title string        `json:"title"`
//	    Tags  []string      `json:"tags"`
//	    Cover goform.File   `json:"cover"`
//	}
//	u, err := goform.Bind[Upload](m)
func Bind[T any](m Map) (T, error) {
	var out T
	data, err := json.Marshal(m)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// MarshalJSON writes finite values as JSON numbers. Float fields accept
// "NaN" and "Inf" like strconv.ParseFloat, which JSON numbers cannot carry,
// so those are written as strings.
func (f Float) MarshalJSON() ([]byte, error) {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return []byte(`"NaN"`), nil
	case math.IsInf(x, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(x, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(x)
}

// UnmarshalJSON accepts a JSON number or one of the strings written by
// MarshalJSON.
func (f *Float) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = Float(x)
		return nil
	}
	var x float64
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	*f = Float(x)
	return nil
}

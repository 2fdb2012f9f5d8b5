package keyset

import (
	"io"

	"xdao.co/keyring"
)

// Reader deserializes keysets from some source.
type Reader interface {
	// Read returns a cleartext keyset.
	Read() (*Keyset, error)
	// ReadEncrypted returns an encrypted keyset.
	ReadEncrypted() (*EncryptedKeyset, error)
}

// Writer serializes keysets to some destination.
type Writer interface {
	// Write writes a cleartext keyset.
	Write(ks *Keyset) error
	// WriteEncrypted writes an encrypted keyset.
	WriteEncrypted(ek *EncryptedKeyset) error
}

// BinaryReader reads keysets in the binary wire format.
type BinaryReader struct {
	r io.Reader
}

// NewBinaryReader returns a Reader over r.
func NewBinaryReader(r io.Reader) *BinaryReader { return &BinaryReader{r: r} }

func (br *BinaryReader) Read() (*Keyset, error) {
	data, err := io.ReadAll(br.r)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindInvalidKeyset, "keyset: read failed", err)
	}
	return Unmarshal(data)
}

func (br *BinaryReader) ReadEncrypted() (*EncryptedKeyset, error) {
	data, err := io.ReadAll(br.r)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindInvalidKeyset, "keyset: read failed", err)
	}
	return UnmarshalEncrypted(data)
}

// BinaryWriter writes keysets in the binary wire format.
type BinaryWriter struct {
	w io.Writer
}

// NewBinaryWriter returns a Writer over w.
func NewBinaryWriter(w io.Writer) *BinaryWriter { return &BinaryWriter{w: w} }

func (bw *BinaryWriter) Write(ks *Keyset) error {
	data, err := Marshal(ks)
	if err != nil {
		return err
	}
	_, err = bw.w.Write(data)
	return err
}

func (bw *BinaryWriter) WriteEncrypted(ek *EncryptedKeyset) error {
	data, err := MarshalEncrypted(ek)
	if err != nil {
		return err
	}
	_, err = bw.w.Write(data)
	return err
}

// JSONReader reads keysets in the JSON representation.
type JSONReader struct {
	r io.Reader
}

// NewJSONReader returns a Reader over r.
func NewJSONReader(r io.Reader) *JSONReader { return &JSONReader{r: r} }

func (jr *JSONReader) Read() (*Keyset, error) {
	data, err := io.ReadAll(jr.r)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindInvalidKeyset, "keyset: read failed", err)
	}
	return UnmarshalJSON(data)
}

func (jr *JSONReader) ReadEncrypted() (*EncryptedKeyset, error) {
	data, err := io.ReadAll(jr.r)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindInvalidKeyset, "keyset: read failed", err)
	}
	return unmarshalEncryptedJSON(data)
}

// JSONWriter writes keysets in the JSON representation.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter returns a Writer over w.
func NewJSONWriter(w io.Writer) *JSONWriter { return &JSONWriter{w: w} }

func (jw *JSONWriter) Write(ks *Keyset) error {
	data, err := MarshalJSON(ks)
	if err != nil {
		return err
	}
	_, err = jw.w.Write(data)
	return err
}

func (jw *JSONWriter) WriteEncrypted(ek *EncryptedKeyset) error {
	data, err := marshalEncryptedJSON(ek)
	if err != nil {
		return err
	}
	_, err = jw.w.Write(data)
	return err
}

package loaders

// Plaintext passes file bytes through unchanged. It is the registry
// fallback, so a .txt policy or an unknown extension both land here.
type Plaintext struct{}

// NewPlaintext creates a plain text loader.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// Extensions returns the file extensions this loader handles.
func (l *Plaintext) Extensions() []string {
	return []string{".txt", ".text", ".csv"}
}

// Extract converts raw file bytes to plain text.
func (l *Plaintext) Extract(data []byte) (string, error) {
	return string(data), nil
}

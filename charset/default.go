package charset

import "sync/atomic"

var defaultCodec atomic.Pointer[Codec]

func init() {
	c, err := Lookup("ascii")
	if err != nil {
		panic(err)
	}
	defaultCodec.Store(c)
}

// Default returns the codec for the current process-wide encoding.
func Default() *Codec {
	return defaultCodec.Load()
}

// DefaultName returns the name of the current process-wide encoding.
func DefaultName() string {
	return defaultCodec.Load().Name()
}

// SetDefault switches the process-wide encoding. The name is validated
// here, so a bad name fails the switch instead of failing later string
// conversions. Concurrent writers race benignly, last write wins.
func SetDefault(name string) error {
	c, err := Lookup(name)
	if err != nil {
		return err
	}
	defaultCodec.Store(c)
	return nil
}

// EncodeString converts a host string to bytes using the process-wide
// encoding as it is at call time.
func EncodeString(s string) ([]byte, error) {
	return Default().Encode(s)
}

// DecodeString converts bytes to a host string using the process-wide
// encoding as it is at call time.
func DecodeString(data []byte) (string, error) {
	return Default().Decode(data)
}

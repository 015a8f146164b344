package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MetadataMUS is the MUS serializer for Metadata, used by catalog backends
// that store records as raw bytes. Written by hand; the struct is small
// enough that generated serializers are not worth the build step.
var MetadataMUS = metadataMUS{}

type metadataMUS struct{}

// Marshal writes m into bs and returns the number of bytes written.
// bs must be at least Size(m) bytes long.
func (metadataMUS) Marshal(m Metadata, bs []byte) (n int) {
	n = ord.String.Marshal(m.FileID, bs)
	n += ord.String.Marshal(m.FileName, bs[n:])
	n += ord.String.Marshal(m.FileType, bs[n:])
	n += ord.String.Marshal(m.Owner, bs[n:])
	n += ord.String.Marshal(m.Digest, bs[n:])
	n += varint.Int64.Marshal(m.CreatedAt.UnixMicro(), bs[n:])
	return n
}

// Unmarshal reads a Metadata value from bs.
func (metadataMUS) Unmarshal(bs []byte) (m Metadata, n int, err error) {
	var n1 int
	if m.FileID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if m.FileName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.FileType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.Owner, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.Digest, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	m.CreatedAt = time.UnixMicro(micros).UTC()
	return
}

// Size returns the number of bytes Marshal will produce for m.
func (metadataMUS) Size(m Metadata) (size int) {
	size = ord.String.Size(m.FileID)
	size += ord.String.Size(m.FileName)
	size += ord.String.Size(m.FileType)
	size += ord.String.Size(m.Owner)
	size += ord.String.Size(m.Digest)
	size += varint.Int64.Size(m.CreatedAt.UnixMicro())
	return size
}

// Package tilemap provides the dense binary encoding of a terrain tile grid.
package tilemap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Tile map format errors.
var (
	ErrInvalidMagic       = errors.New("invalid tile map magic: expected 'ITMP'")
	ErrUnsupportedVersion = errors.New("unsupported tile map version")
	ErrTruncatedData      = errors.New("truncated tile map data")
	ErrInvalidDimensions  = errors.New("invalid tile map dimensions")
	ErrInvalidTile        = errors.New("invalid tile")
)

const (
	magic      = "ITMP"
	headerSize = 11

	// MaxDimension is the largest width or height the header can carry.
	MaxDimension = 1<<16 - 1

	// Encoded tile size bounds: height, offsets and flags, then at most 255
	// paths of 255 bytes, each with a length byte, after a count byte.
	minTileBytes = 3
	maxTileBytes = minTileBytes + 1 + 255*(1+255)
)

// Version is the tile map format version.
type Version struct {
	Major uint8
	Minor uint8
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentVersion is written by Encode.
var CurrentVersion = Version{Major: 1, Minor: 0}

// Compression selects how the tile payload is stored.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionZstd Compression = 1
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

const flagPaths = 1 << 0

// Tile is one encoded tile. Vertices are the corner offsets in the order
// left, bottom, right, top. Paths are opaque overlay segments.
type Tile struct {
	Height   uint8
	Vertices [4]uint8
	Paths    [][]byte
}

// Map is a decoded tile map. Tiles are stored x-major: index x*Height + y.
type Map struct {
	Version     Version
	Width       uint16
	Height      uint16
	Compression Compression
	Tiles       []Tile
}

// New returns an all-flat map of the given size.
func New(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Map{
		Version: CurrentVersion,
		Width:   uint16(width),
		Height:  uint16(height),
		Tiles:   make([]Tile, width*height),
	}, nil
}

// GetTile returns the tile at the given coordinates.
// Returns nil if coordinates are out of bounds.
func (m *Map) GetTile(x, y int) *Tile {
	if x < 0 || y < 0 || x >= int(m.Width) || y >= int(m.Height) {
		return nil
	}
	return &m.Tiles[x*int(m.Height)+y]
}

// validTile applies the at-rest corner rules.
func validTile(t *Tile) bool {
	zero := false
	for i, o := range t.Vertices {
		if o > 2 {
			return false
		}
		next := t.Vertices[(i+1)&3]
		if o > next+1 || next > o+1 {
			return false
		}
		zero = zero || o == 0
	}
	return zero
}

// Encode serialises the map with the given payload compression.
func Encode(m *Map, c Compression) ([]byte, error) {
	if m.Width == 0 || m.Height == 0 || len(m.Tiles) != int(m.Width)*int(m.Height) {
		return nil, fmt.Errorf("%w: %dx%d with %d tiles", ErrInvalidDimensions, m.Width, m.Height, len(m.Tiles))
	}

	var payload bytes.Buffer
	for i := range m.Tiles {
		if err := writeTile(&payload, &m.Tiles[i]); err != nil {
			return nil, fmt.Errorf("encoding tile %d: %w", i, err)
		}
	}

	body := payload.Bytes()
	switch c {
	case CompressionNone:
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		body = enc.EncodeAll(body, nil)
		enc.Close()
	default:
		return nil, fmt.Errorf("unknown compression %s", c)
	}

	out := make([]byte, 0, headerSize+len(body))
	out = append(out, magic...)
	out = append(out, CurrentVersion.Minor, CurrentVersion.Major)
	out = binary.LittleEndian.AppendUint16(out, m.Width)
	out = binary.LittleEndian.AppendUint16(out, m.Height)
	out = append(out, byte(c))
	return append(out, body...), nil
}

func writeTile(w *bytes.Buffer, t *Tile) error {
	if !validTile(t) {
		return fmt.Errorf("%w: offsets %v", ErrInvalidTile, t.Vertices)
	}
	if len(t.Paths) > 255 {
		return fmt.Errorf("%w: %d paths", ErrInvalidTile, len(t.Paths))
	}

	var packed uint8
	for i, o := range t.Vertices {
		packed |= o << (2 * i)
	}
	var flags uint8
	if len(t.Paths) > 0 {
		flags |= flagPaths
	}
	w.WriteByte(t.Height)
	w.WriteByte(packed)
	w.WriteByte(flags)

	if flags&flagPaths == 0 {
		return nil
	}
	w.WriteByte(uint8(len(t.Paths)))
	for _, p := range t.Paths {
		if len(p) > 255 {
			return fmt.Errorf("%w: path of %d segments", ErrInvalidTile, len(p))
		}
		w.WriteByte(uint8(len(p)))
		w.Write(p)
	}
	return nil
}

// Decode parses a tile map from raw bytes.
func Decode(data []byte) (*Map, error) {
	if len(data) < headerSize {
		return nil, ErrTruncatedData
	}
	if string(data[0:4]) != magic {
		return nil, ErrInvalidMagic
	}

	// Version is stored as [minor, major]
	version := Version{Major: data[5], Minor: data[4]}
	if version.Major != CurrentVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}

	width := binary.LittleEndian.Uint16(data[6:8])
	height := binary.LittleEndian.Uint16(data[8:10])
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	c := Compression(data[10])
	tiles := int(width) * int(height)
	body := data[headerSize:]
	switch c {
	case CompressionNone:
	case CompressionZstd:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(tiles)*maxTileBytes))
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		body, err = dec.DecodeAll(body, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncatedData, err)
		}
	default:
		return nil, fmt.Errorf("%w: compression %s", ErrUnsupportedVersion, c)
	}

	// The header is untrusted: check the payload can hold every tile
	// before allocating the grid.
	if len(body) < tiles*minTileBytes {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d tiles", ErrTruncatedData, len(body), width, height)
	}

	m := &Map{
		Version:     version,
		Width:       width,
		Height:      height,
		Compression: c,
		Tiles:       make([]Tile, tiles),
	}
	r := bytes.NewReader(body)
	for i := range m.Tiles {
		if err := readTile(r, &m.Tiles[i]); err != nil {
			return nil, fmt.Errorf("parsing tile %d: %w", i, err)
		}
	}
	return m, nil
}

func readTile(r *bytes.Reader, t *Tile) error {
	var hdr [3]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("%w: reading tile header", ErrTruncatedData)
	}
	t.Height = hdr[0]
	for i := range t.Vertices {
		t.Vertices[i] = (hdr[1] >> (2 * i)) & 3
	}
	if !validTile(t) {
		return fmt.Errorf("%w: offsets %v", ErrInvalidTile, t.Vertices)
	}
	if hdr[2]&flagPaths == 0 {
		return nil
	}

	count, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: reading path count", ErrTruncatedData)
	}
	t.Paths = make([][]byte, count)
	for i := range t.Paths {
		n, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("%w: reading path %d", ErrTruncatedData, i)
		}
		p := make([]byte, n)
		if _, err := io.ReadFull(r, p); err != nil {
			return fmt.Errorf("%w: reading path %d", ErrTruncatedData, i)
		}
		t.Paths[i] = p
	}
	return nil
}

// DecodeFile parses a tile map from disk.
func DecodeFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tile map file: %w", err)
	}
	return Decode(data)
}

// EncodeFile writes the map to disk.
func EncodeFile(path string, m *Map, c Compression) error {
	data, err := Encode(m, c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing tile map file: %w", err)
	}
	return nil
}

// AltitudeRange returns the lowest and highest corner elevation in the map.
func (m *Map) AltitudeRange() (lo, hi int) {
	if len(m.Tiles) == 0 {
		return 0, 0
	}
	lo = int(m.Tiles[0].Height)
	hi = lo
	for _, t := range m.Tiles {
		for _, o := range t.Vertices {
			e := int(t.Height) + int(o)
			lo = min(lo, e)
			hi = max(hi, e)
		}
	}
	return lo, hi
}

package trace

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadASCII parses whitespace separated sample values. Lines starting with
// '#' are skipped.
func ReadASCII(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var samples []float64
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		for _, field := range strings.Fields(text) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid sample %q: %w", line, field, err)
			}
			samples = append(samples, v)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}

	return samples, nil
}

// ReadFloat64LE reads raw little-endian float64 samples. A trailing partial
// sample is dropped.
func ReadFloat64LE(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}

	// Trim to multiple of 8 bytes
	data = data[:len(data)-(len(data)%8)]
	if len(data) == 0 {
		return nil, nil
	}

	samples := make([]float64, len(data)/8)
	for i := range samples {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}

	return samples, nil
}

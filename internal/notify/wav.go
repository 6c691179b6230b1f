package notify

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	wavFormatPCM     = 1
	wavBitDepth      = 16
	bytesPerSample   = 2
	defaultRate      = 44100
	defaultChannels  = 2
	beepFrequency    = 880.0
	beepAmplitude    = 0.4 * math.MaxInt16
	beepOnSeconds    = 0.25
	beepOffSeconds   = 0.15
	beepPauseSeconds = 0.6
	beepRepeats      = 3
)

var (
	// errNotWAV is returned for files without a RIFF/WAVE header.
	errNotWAV = errors.New("not a WAV file")
	// errUnsupportedWAV is returned for WAV encodings other than 16-bit PCM.
	errUnsupportedWAV = errors.New("only 16-bit PCM WAV files are supported")
	// errNoAudioData is returned when the data chunk is missing.
	errNoAudioData = errors.New("WAV file has no data chunk")
)

// Format describes interleaved signed 16-bit little-endian PCM.
type Format struct {
	// SampleRate is the number of frames per second.
	SampleRate int
	// Channels is the number of interleaved channels.
	Channels int
}

// ParseWAV extracts the format and PCM payload of a 16-bit PCM WAV file.
func ParseWAV(data []byte) (Format, []byte, error) {
	r := bytes.NewReader(data)

	var header struct {
		RIFF [4]byte
		Size uint32
		WAVE [4]byte
	}

	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return Format{}, nil, fmt.Errorf("%w: %w", errNotWAV, err)
	}

	if string(header.RIFF[:]) != "RIFF" || string(header.WAVE[:]) != "WAVE" {
		return Format{}, nil, errNotWAV
	}

	var (
		format    Format
		sawFormat bool
	)

	for {
		var chunk struct {
			ID   [4]byte
			Size uint32
		}

		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			if errors.Is(err, io.EOF) {
				return Format{}, nil, errNoAudioData
			}

			return Format{}, nil, fmt.Errorf("read chunk header: %w", err)
		}

		switch string(chunk.ID[:]) {
		case "fmt ":
			var fmtChunk struct {
				AudioFormat   uint16
				Channels      uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}

			if err := binary.Read(r, binary.LittleEndian, &fmtChunk); err != nil {
				return Format{}, nil, fmt.Errorf("read fmt chunk: %w", err)
			}

			if fmtChunk.AudioFormat != wavFormatPCM || fmtChunk.BitsPerSample != wavBitDepth {
				return Format{}, nil, errUnsupportedWAV
			}

			format = Format{
				SampleRate: int(fmtChunk.SampleRate),
				Channels:   int(fmtChunk.Channels),
			}
			sawFormat = true

			if _, err := r.Seek(int64(chunk.Size)-16, io.SeekCurrent); err != nil {
				return Format{}, nil, fmt.Errorf("skip fmt extension: %w", err)
			}
		case "data":
			if !sawFormat {
				return Format{}, nil, errUnsupportedWAV
			}

			pcm := make([]byte, chunk.Size)
			if _, err := io.ReadFull(r, pcm); err != nil {
				return Format{}, nil, fmt.Errorf("read data chunk: %w", err)
			}

			return format, pcm, nil
		default:
			// Chunks are word aligned.
			skip := int64(chunk.Size) + int64(chunk.Size%2)
			if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
				return Format{}, nil, fmt.Errorf("skip chunk: %w", err)
			}
		}
	}
}

// Beep synthesises three short sine beeps followed by a pause.
func Beep() (Format, []byte) {
	format := Format{
		SampleRate: defaultRate,
		Channels:   defaultChannels,
	}

	var buf bytes.Buffer

	writeSilence := func(seconds float64) {
		frames := int(seconds * defaultRate)
		buf.Write(make([]byte, frames*defaultChannels*bytesPerSample))
	}

	for range beepRepeats {
		frames := int(beepOnSeconds * defaultRate)

		for i := range frames {
			sample := int16(beepAmplitude * math.Sin(2*math.Pi*beepFrequency*float64(i)/defaultRate))

			for range defaultChannels {
				_ = binary.Write(&buf, binary.LittleEndian, sample)
			}
		}

		writeSilence(beepOffSeconds)
	}

	writeSilence(beepPauseSeconds)

	return format, buf.Bytes()
}

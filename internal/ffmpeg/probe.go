package ffmpeg

import (
	"encoding/json"
	"os/exec"
	"strconv"
)

type ProbeResult struct {
	Format  ProbeFormat   `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

type ProbeFormat struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

type ProbeStream struct {
	Index         int               `json:"index"`
	CodecName     string            `json:"codec_name"`
	CodecType     string            `json:"codec_type"` // audio, video
	BitRate       string            `json:"bit_rate,omitempty"`
	SampleRate    string            `json:"sample_rate,omitempty"`
	Channels      int               `json:"channels,omitempty"`
	ChannelLayout string            `json:"channel_layout,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
}

type AudioInfo struct {
	DurationSecs float64 `json:"duration_secs"`
	Size         string  `json:"size"`
	BitRate      string  `json:"bit_rate"`
	Codec        string  `json:"codec"`
	SampleRate   string  `json:"sample_rate"`
	Channels     int     `json:"channels"`
}

// Probe inspects an audio file with ffprobe
func Probe(filePath string) (*AudioInfo, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var result ProbeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, err
	}

	info := &AudioInfo{
		Size:    result.Format.Size,
		BitRate: result.Format.BitRate,
	}
	if d, err := strconv.ParseFloat(result.Format.Duration, 64); err == nil {
		info.DurationSecs = d
	}

	for _, s := range result.Streams {
		if s.CodecType == "audio" {
			info.Codec = s.CodecName
			info.SampleRate = s.SampleRate
			info.Channels = s.Channels
			break
		}
	}

	return info, nil
}

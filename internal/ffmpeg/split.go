package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SplitAudio re-encodes an audio file into fixed-length MP3 segments and
// returns the chunk paths in playback order. Chunks are written into destDir
// as chunk_000.mp3, chunk_001.mp3, ...
func SplitAudio(ctx context.Context, inputPath, destDir string, segmentSeconds int) ([]string, error) {
	chunkPattern := filepath.Join(destDir, "chunk_%03d.mp3")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", inputPath,
		"-f", "segment",
		"-segment_time", strconv.Itoa(segmentSeconds),
		"-c:a", "libmp3lame",
		"-b:a", "128k",
		"-ac", "1",
		"-y",
		chunkPattern,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg split: %s: %w", strings.TrimSpace(string(output)), err)
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		return nil, err
	}

	var chunks []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "chunk_") && strings.HasSuffix(e.Name(), ".mp3") {
			chunks = append(chunks, filepath.Join(destDir, e.Name()))
		}
	}
	sort.Strings(chunks)

	if len(chunks) == 0 {
		return nil, fmt.Errorf("ffmpeg split: no chunks produced")
	}
	return chunks, nil
}

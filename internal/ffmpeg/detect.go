package ffmpeg

import "os/exec"

// Available reports whether the ffmpeg binary is on PATH
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

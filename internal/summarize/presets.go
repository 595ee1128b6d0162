package summarize

const systemPrompt = "You are a helpful assistant that summarizes podcast transcripts and extracts key timestamps."

var stylePrompts = map[string]string{
	"default":  "Summarize the following podcast transcript and extract key timestamps for important segments:",
	"brief":    "Write a short summary (3-5 sentences) of the following podcast transcript and list the three most important timestamps:",
	"detailed": "Write a detailed, section-by-section summary of the following podcast transcript. Extract key timestamps for every major topic and include notable quotes:",
}

// Styles lists the selectable summary styles
func Styles() []string {
	return []string{"default", "brief", "detailed", "custom"}
}

// BuildPrompt returns the system and user prompts for a summary request.
// Unknown styles fall back to the default instruction.
func BuildPrompt(style, customPrompt, transcript string) (string, string) {
	if style == "custom" && customPrompt != "" {
		return systemPrompt, customPrompt + "\n\n" + transcript
	}
	instruction, ok := stylePrompts[style]
	if !ok {
		instruction = stylePrompts["default"]
	}
	return systemPrompt, instruction + "\n\n" + transcript
}

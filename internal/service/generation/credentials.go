package generation

import (
	"os"
	"strings"
)

func openAIKey() string {
	return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
}

package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestBanner(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	t.Cleanup(func() { GitCommit, BuildDate = origCommit, origDate })

	GitCommit, BuildDate = "", ""
	assert.Equal(t, "zenc "+Version, Banner(false))

	GitCommit = "1234567890abcdef1234"
	BuildDate = "2024-01-15"
	assert.Equal(t, "zenc "+Version+" (1234567890ab, 2024-01-15)", Banner(false))
}

func TestColoredBannerKeepsDigits(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	out := colorVersion("1.2.3-rc.1")
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "-rc.1")
	assert.Equal(t, "weird", colorVersion("weird"))
}

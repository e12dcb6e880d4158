package zedit

import "go.uber.org/zap"

// Config stores configuration information for a document.
type Config struct {
	Logger               *zap.Logger // structured logger, never nil after NewConfig
	LineLengthGuess      int         // initial guess of the average paragraph length used by LineFor
	StripTabs            bool        // drop tab characters from inserted text
	BlendFG              BlendMode   // how overlapping highlight foregrounds are composited
	BlendFGSwitched      bool        // swap the operands while blending foregrounds
	BlendBG              BlendMode   // how overlapping highlight backgrounds are composited
	BlendBGSwitched      bool        // swap the operands while blending backgrounds
	DefaultStyle         *Style      // style of text not covered by any styled range (may be nil)
	PanicOnInconsistency bool        // panic instead of returning ErrInconsistent (debug builds, tests)
}

// NewConfig returns a new config with default values.
func NewConfig() *Config {
	c := &Config{}
	c.Logger = zap.NewNop()
	c.LineLengthGuess = 40
	c.BlendFG = BlendOverlay
	c.BlendBG = BlendOverlay
	return c
}

// sanitize fills in zero values a caller may have left in a hand-built config.
func (c *Config) sanitize() {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.LineLengthGuess < 1 {
		c.LineLengthGuess = 1
	}
}

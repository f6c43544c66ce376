package uservalue

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/plan-systems/klog"
	"github.com/surfsel/surfsel/libsel/angle"
	"github.com/surfsel/surfsel/surfsel"
)

// LinePrompter asks for an angle in degrees on Out and reads the reply from In.
//
// An empty reply, EOF, or an unreadable number abandons the edit.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

func (lp LinePrompter) PromptAngle(name string, current s1.Angle) (s1.Angle, error) {
	if lp.Out != nil {
		fmt.Fprintf(lp.Out, "%s [degrees] (current %.4g): ", name, current.Degrees())
	}

	scanner := bufio.NewScanner(lp.In)
	if !scanner.Scan() {
		return 0, surfsel.ErrHostValueUnavailable
	}
	reply := strings.TrimSpace(scanner.Text())
	if reply == "" {
		return 0, surfsel.ErrHostValueUnavailable
	}

	deg, err := strconv.ParseFloat(reply, 64)
	if err != nil || !angle.IsThreshold(deg) {
		klog.Warningf("error setting user value %q: %q is not a positive angle", name, reply)
		return 0, surfsel.ErrHostValueUnavailable
	}
	return s1.Angle(deg) * s1.Degree, nil
}

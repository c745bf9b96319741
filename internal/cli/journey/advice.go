package journey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/boardprep/internal/advice"
	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/constants"
	apperrors "github.com/julianstephens/boardprep/internal/errors"
)

type AdviceCmd struct {
	Timeout time.Duration `help:"How long to wait for the mentor." default:"30s"`

	// advisor overrides the Gemini client in tests
	advisor advice.Advisor
}

func (c *AdviceCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	advisor := c.advisor
	if advisor == nil {
		if advisor, err = cli.NewAdvisor(); err != nil {
			return err
		}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultAdviceTimeout
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	reply, err := advice.Consult(reqCtx, advisor, t.Document(), ctx.Now())
	if err != nil {
		if errors.Is(err, advice.ErrNotStarted) {
			return apperrors.WithHint(err, "run 'boardprep start'")
		}
		return err
	}
	fmt.Println("🧑‍🏫 Mentor says:")
	fmt.Println(reply)
	return nil
}

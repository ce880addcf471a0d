package recognize

import (
	"context"
	"time"

	"github.com/calolens/calo-cli/internal/model"
)

type stage struct {
	name     string
	progress int
	message  model.LocalizedString
	delay    time.Duration
}

var stages = []stage{
	{
		name:     "uploading",
		progress: 20,
		message:  model.LocalizedString{EN: "Uploading image...", AR: "جاري رفع الصورة..."},
		delay:    800 * time.Millisecond,
	},
	{
		name:     "processing",
		progress: 40,
		message:  model.LocalizedString{EN: "Processing image...", AR: "جاري معالجة الصورة..."},
		delay:    1200 * time.Millisecond,
	},
	{
		name:     "analyzing",
		progress: 80,
		message:  model.LocalizedString{EN: "Recognizing foods...", AR: "جاري التعرف على الأطعمة..."},
		delay:    1500 * time.Millisecond,
	},
	{
		name:     "complete",
		progress: 100,
		message:  model.LocalizedString{EN: "Analysis complete!", AR: "تم التحليل بنجاح!"},
		delay:    500 * time.Millisecond,
	},
}

// AnalyzeProgressive streams the four staged states of an analysis run,
// pausing for the stage delay after each yield. Every call starts a fresh
// run; the channel closes after the final stage or when ctx is cancelled.
func (a *Analyzer) AnalyzeProgressive(ctx context.Context, image []byte) <-chan model.AnalysisState {
	out := make(chan model.AnalysisState)
	go func() {
		defer close(out)
		for _, s := range stages {
			state := model.AnalysisState{
				Stage:     s.name,
				Progress:  s.progress,
				Message:   s.message,
				Analyzing: s.name != "complete",
			}
			select {
			case out <- state:
			case <-ctx.Done():
				return
			}
			if err := a.sleep(ctx, s.delay); err != nil {
				return
			}
		}
	}()
	return out
}

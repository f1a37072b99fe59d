// internal/profile/machine.go
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/common/validation"
	"scholarship-workers/internal/models"
)

// StepResult is the outcome of one Next call. Errors is non-empty exactly
// when the step was rejected and nothing was written.
type StepResult struct {
	Step     int                          `json:"step"`
	State    State                        `json:"-"`
	Complete bool                         `json:"complete"`
	Errors   []validation.ValidationError `json:"errors,omitempty"`
	Profile  *models.StudentProfile       `json:"profile,omitempty"`
}

// Wizard drives the five-step profile form. Local writes are synchronous;
// the mirror and the completion hook run in the background.
type Wizard struct {
	store         Store
	loader        Loader
	mirror        Mirror
	hook          CompletionHook
	logger        logger.Logger
	now           func() time.Time
	mirrorTimeout time.Duration
	wg            sync.WaitGroup
}

type Option func(*Wizard)

func WithMirror(m Mirror) Option {
	return func(w *Wizard) { w.mirror = m }
}

// WithLoader sets the read path used when the local store has no profile,
// normally a Repository that falls back to the mirror.
func WithLoader(l Loader) Option {
	return func(w *Wizard) { w.loader = l }
}

func WithCompletionHook(h CompletionHook) Option {
	return func(w *Wizard) { w.hook = h }
}

func WithLogger(l logger.Logger) Option {
	return func(w *Wizard) { w.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

func WithMirrorTimeout(d time.Duration) Option {
	return func(w *Wizard) { w.mirrorTimeout = d }
}

func NewWizard(store Store, opts ...Option) *Wizard {
	w := &Wizard{
		store:         store,
		logger:        logger.NewNoOpLogger(),
		now:           time.Now,
		mirrorTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithFields(map[string]interface{}{"component": "profile-wizard"})
	return w
}

// Resume returns the position a returning user lands on.
func (w *Wizard) Resume(ctx context.Context, uid string) (State, *models.StudentProfile, error) {
	if uid == "" {
		return Step1, nil, ErrMissingUserID
	}
	p, err := w.load(ctx, uid)
	if err != nil {
		return Step1, nil, err
	}
	return stateOf(p), p, nil
}

// Next validates and saves step. A validation failure is reported in
// StepResult.Errors with a nil error.
func (w *Wizard) Next(ctx context.Context, uid, email string, step int, form Form) (*StepResult, error) {
	if uid == "" {
		return nil, ErrMissingUserID
	}
	if step < FirstStep || step > LastStep {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}

	p, err := w.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p != nil && p.IsProfileComplete {
		w.record(step, "rejected_complete")
		return nil, ErrProfileAlreadyComplete
	}

	reached := FirstStep
	if p != nil && p.CurrentStep > reached {
		reached = p.CurrentStep
	}
	if step > reached {
		w.record(step, "out_of_order")
		return nil, fmt.Errorf("%w: step %d, reached %d", ErrStepOutOfOrder, step, reached)
	}

	if errs := ValidateStep(step, form); len(errs) > 0 {
		w.record(step, "invalid")
		return &StepResult{Step: step, State: State(step), Errors: errs, Profile: p}, nil
	}

	now := w.now()
	if p == nil {
		p = newProfile(uid, email, now)
	}
	if email != "" && p.Email == "" {
		p.Email = email
	}

	if err := applyStep(p, step, form, now); err != nil {
		if State(step) == Step3 {
			w.record(step, "invalid")
			return &StepResult{
				Step:  step,
				State: Step3,
				Errors: []validation.ValidationError{{
					Field:   "academicRecords",
					Message: "Academic records are malformed",
					Code:    "INVALID_TYPE",
				}},
			}, nil
		}
		return nil, fmt.Errorf("merge step %d: %w", step, err)
	}

	result := &StepResult{Step: step}
	if step == LastStep {
		p.IsProfileComplete = true
		p.CurrentStep = LastStep
		p.CompletedAt = &now
		result.State = Complete
		result.Complete = true
	} else {
		if step+1 > p.CurrentStep {
			p.CurrentStep = step + 1
		}
		result.State = State(p.CurrentStep)
	}
	p.UpdatedAt = now

	if err := w.store.Save(ctx, p); err != nil {
		w.record(step, "store_failed")
		return nil, err
	}
	result.Profile = p
	w.record(step, "saved")

	w.mirrorAsync(p)
	if result.Complete {
		w.hookAsync(p)
	}
	return result, nil
}

// Previous is the step before step, never below the first.
func (w *Wizard) Previous(step int) int {
	if step <= FirstStep {
		return FirstStep
	}
	if step > LastStep {
		return LastStep
	}
	return step - 1
}

// ReopenForEdit clears the complete flag so the form can be edited again.
func (w *Wizard) ReopenForEdit(ctx context.Context, uid string) (*models.StudentProfile, error) {
	if uid == "" {
		return nil, ErrMissingUserID
	}
	p, err := w.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	if !p.IsProfileComplete {
		return p, nil
	}

	p.IsProfileComplete = false
	p.CurrentStep = LastStep
	p.UpdatedAt = w.now()
	if err := w.store.Save(ctx, p); err != nil {
		return nil, err
	}
	w.record(LastStep, "reopened")
	w.mirrorAsync(p)
	return p, nil
}

// Clear removes the profile locally and, best-effort, from the mirror.
func (w *Wizard) Clear(ctx context.Context, uid string) error {
	if uid == "" {
		return ErrMissingUserID
	}
	if err := w.store.Clear(ctx, uid); err != nil {
		return err
	}
	if w.mirror == nil {
		return nil
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		mctx, cancel := context.WithTimeout(context.Background(), w.mirrorTimeout)
		defer cancel()
		if err := w.mirror.Delete(mctx, uid); err != nil {
			metrics.ProfileMirrorFailures.Inc()
			w.logger.Warn("profile mirror delete failed", map[string]interface{}{
				"uid":   uid,
				"error": err.Error(),
			})
		}
	}()
	return nil
}

func (w *Wizard) HasCompletedProfile(ctx context.Context, uid string) (bool, error) {
	p, err := w.load(ctx, uid)
	if err != nil {
		return false, err
	}
	return p != nil && p.IsProfileComplete, nil
}

// load reads the local store and, on a miss, the loader or the mirror. A
// profile fetched straight from the mirror is written back locally.
func (w *Wizard) load(ctx context.Context, uid string) (*models.StudentProfile, error) {
	p, err := w.store.Load(ctx, uid)
	if err != nil || p != nil {
		return p, err
	}

	if w.loader != nil {
		p, err = w.loader.Get(ctx, uid)
		if errors.Is(err, ErrProfileNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load profile %s: %w", uid, err)
		}
		return p, nil
	}
	if w.mirror == nil {
		return nil, nil
	}

	p, err = w.mirror.Fetch(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("fetch mirrored profile %s: %w", uid, err)
	}
	if p == nil {
		return nil, nil
	}
	if err := w.store.Save(ctx, p); err != nil {
		w.logger.Warn("profile restore to local store failed", map[string]interface{}{
			"uid":   uid,
			"error": err.Error(),
		})
	}
	return p, nil
}

// Wait blocks until background mirror writes and hooks have finished.
func (w *Wizard) Wait() {
	w.wg.Wait()
}

func (w *Wizard) mirrorAsync(p *models.StudentProfile) {
	if w.mirror == nil {
		return
	}
	snapshot, err := clone(p)
	if err != nil {
		w.logger.Warn("profile snapshot failed", map[string]interface{}{"uid": p.UID, "error": err.Error()})
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), w.mirrorTimeout)
		defer cancel()
		if err := w.mirror.Mirror(ctx, snapshot); err != nil {
			metrics.ProfileMirrorFailures.Inc()
			w.logger.Warn("profile mirror write failed", map[string]interface{}{
				"uid":   snapshot.UID,
				"error": err.Error(),
			})
		}
	}()
}

func (w *Wizard) hookAsync(p *models.StudentProfile) {
	if w.hook == nil {
		return
	}
	snapshot, err := clone(p)
	if err != nil {
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), w.mirrorTimeout)
		defer cancel()
		if err := w.hook(ctx, snapshot); err != nil {
			w.logger.Warn("profile completion hook failed", map[string]interface{}{
				"uid":   snapshot.UID,
				"error": err.Error(),
			})
		}
	}()
}

func (w *Wizard) record(step int, outcome string) {
	metrics.WizardTransitions.WithLabelValues(State(step).String(), outcome).Inc()
}

func clone(p *models.StudentProfile) (*models.StudentProfile, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out models.StudentProfile
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

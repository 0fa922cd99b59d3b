package watcher

import (
	"context"
	"crypto/sha1" //nolint:gosec // content hash for dedupe ids
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Adda-Baaj/simple-uber/internal/domain"
	"github.com/Adda-Baaj/simple-uber/internal/logger"
	"github.com/Adda-Baaj/simple-uber/pkg/publishers"
	"github.com/Adda-Baaj/simple-uber/pkg/targets"
	"github.com/Adda-Baaj/simple-uber/pkg/uber"
)

// Service polls targets and publishes snapshots that changed since the last delivery.
type Service struct {
	api       EstimatesAPI
	publisher EventPublisher
	dedupe    Deduper
	log       Logger
	now       func() time.Time
}

// NewService wires a watcher. A nil deduper publishes every snapshot.
func NewService(api EstimatesAPI, pub EventPublisher, log Logger, dedupe Deduper) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		api:       api,
		publisher: pub,
		dedupe:    dedupe,
		log:       log,
		now:       time.Now,
	}
}

// Run executes one polling pass over all targets.
func (s *Service) Run(ctx context.Context, tgts []targets.Target) error {
	if s == nil || s.api == nil || s.publisher == nil {
		return fmt.Errorf("watcher service is not initialized")
	}
	if len(tgts) == 0 {
		return fmt.Errorf("no targets configured for watching")
	}

	errs := make([]error, 0, len(tgts))
	for _, t := range tgts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.runTarget(ctx, t); err != nil {
			errs = append(errs, err)
			s.logTargetError(t, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) runTarget(ctx context.Context, t targets.Target) error {
	payload, err := s.fetch(ctx, t)
	if err != nil {
		return fmt.Errorf("poll target %s: %w", t.ID, err)
	}

	snap := newSnapshot(t, payload, s.now())

	if s.dedupe != nil {
		seen, err := s.dedupe.SeenSnapshot(snap.ID)
		if err != nil {
			return fmt.Errorf("check snapshot %s: %w", snap.ID, err)
		}
		if seen {
			s.log.InfoObj("snapshot unchanged", "target_result", map[string]any{
				"target_id":   t.ID,
				"snapshot_id": snap.ID,
			})
			return nil
		}
	}

	delivered, pubErr := s.publisher.Publish(ctx, publishers.NewEvent(t.Name, snap))
	if delivered > 0 && s.dedupe != nil {
		if err := s.dedupe.MarkSnapshot(snap.ID); err != nil {
			pubErr = errors.Join(pubErr, fmt.Errorf("mark snapshot %s: %w", snap.ID, err))
		}
	}
	if pubErr != nil {
		if delivered > 0 {
			s.log.WarnObj("snapshot partially published", "publish_error", map[string]any{
				"target_id": t.ID,
				"delivered": delivered,
				"error":     pubErr.Error(),
			})
			return nil
		}
		return fmt.Errorf("publish snapshot %s: %w", snap.ID, pubErr)
	}

	s.log.InfoObj("snapshot published", "target_result", map[string]any{
		"target_id":   t.ID,
		"kind":        t.Kind,
		"snapshot_id": snap.ID,
		"delivered":   delivered,
	})
	return nil
}

func (s *Service) fetch(ctx context.Context, t targets.Target) (*uber.Payload, error) {
	switch t.Kind {
	case targets.KindProducts:
		return s.api.GetProducts(ctx, t.StartLatitude.Float64(), t.StartLongitude.Float64())
	case targets.KindPrice:
		if t.EndLatitude == nil || t.EndLongitude == nil {
			return nil, fmt.Errorf("price target %s has no end coordinates", t.ID)
		}
		return s.api.GetPriceEstimates(ctx,
			t.StartLatitude.Float64(), t.StartLongitude.Float64(),
			t.EndLatitude.Float64(), t.EndLongitude.Float64())
	case targets.KindTime, "":
		var opts []uber.TimeEstimateOption
		if t.CustomerUUID != nil {
			opts = append(opts, uber.WithCustomerUUID(*t.CustomerUUID))
		}
		if t.ProductID != nil {
			opts = append(opts, uber.WithProductID(*t.ProductID))
		}
		return s.api.GetTimeEstimates(ctx, t.StartLatitude.Float64(), t.StartLongitude.Float64(), opts...)
	default:
		return nil, fmt.Errorf("unsupported target kind %q", t.Kind)
	}
}

func (s *Service) logTargetError(t targets.Target, err error) {
	fields := map[string]any{
		"target_id": t.ID,
		"error":     err.Error(),
	}
	if apiErr, ok := uber.AsAPIError(err); ok {
		fields["http_code"] = apiErr.HTTPCode()
		if code, ok := apiErr.ErrorCode(); ok {
			fields["error_code"] = code
		}
	}
	s.log.ErrorObj("target poll failed", "target_error", fields)
}

// newSnapshot keys the snapshot by target and body hash, so identical
// responses map to the same ID.
func newSnapshot(t targets.Target, payload *uber.Payload, at time.Time) domain.Snapshot {
	raw := payload.Raw()
	sum := sha1.Sum(raw)

	body := json.RawMessage(raw)
	if !json.Valid(raw) {
		body = json.RawMessage("null")
	}

	return domain.Snapshot{
		ID:          t.ID + ":" + hex.EncodeToString(sum[:]),
		TargetID:    t.ID,
		Kind:        t.Kind,
		Payload:     body,
		CollectedAt: at.UTC(),
	}
}

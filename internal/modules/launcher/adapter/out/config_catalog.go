package out

import (
	"context"
	"fmt"

	"threadsuite/internal/modules/launcher/domain"
	launcherout "threadsuite/internal/modules/launcher/port/out"
	"threadsuite/internal/platform/config"
	apperrors "threadsuite/internal/platform/errors"
)

// ConfigCatalog is the static target table loaded once at startup.
type ConfigCatalog struct {
	order   []string
	targets map[string]domain.Target
}

func NewConfigCatalog(entries []config.Target) (launcherout.TargetCatalog, error) {
	c := &ConfigCatalog{targets: make(map[string]domain.Target, len(entries))}
	for _, e := range entries {
		t, err := domain.NewTarget(e.Name, e.Primary, e.Fallback)
		if err != nil {
			return nil, err
		}
		if _, dup := c.targets[t.Name]; dup {
			return nil, fmt.Errorf("duplicate target %q", t.Name)
		}
		c.targets[t.Name] = t
		c.order = append(c.order, t.Name)
	}
	return c, nil
}

func (c *ConfigCatalog) Get(_ context.Context, name string) (domain.Target, error) {
	t, ok := c.targets[name]
	if !ok {
		return domain.Target{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownTarget, name)
	}
	return t, nil
}

func (c *ConfigCatalog) List(_ context.Context) ([]domain.Target, error) {
	out := make([]domain.Target, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.targets[name])
	}
	return out, nil
}

package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/biosecret/todopages/models"
	"github.com/biosecret/todopages/store"
)

// Notifier nhận sự kiện todo sau khi thao tác thành công
type Notifier interface {
	Notify(ctx context.Context, ev models.Event)
}

// Config cấu hình các service
type Config struct {
	// Now trả về thời điểm hiện tại; mặc định time.Now().UTC()
	Now func() time.Time
	// Notifier có thể nil
	Notifier   Notifier
	BcryptCost int
}

// Services gom các service dùng chung một Store
type Services struct {
	Pages     *Pages
	Todos     *Todos
	Profiles  *Profiles
	Search    *Search
	Accounts  *Accounts
	Dashboard *Dashboard
}

func New(st *store.Store, cfg Config) *Services {
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	profiles := &Profiles{store: st, now: cfg.Now}
	return &Services{
		Pages:     &Pages{store: st, now: cfg.Now},
		Todos:     &Todos{store: st, now: cfg.Now, notifier: cfg.Notifier},
		Profiles:  profiles,
		Search:    &Search{store: st, now: cfg.Now},
		Accounts:  &Accounts{store: st, profiles: profiles, now: cfg.Now, cost: cfg.BcryptCost},
		Dashboard: &Dashboard{store: st, now: cfg.Now},
	}
}

// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/copconnect/reporting-service/internal/domain"
	"github.com/copconnect/reporting-service/internal/repository"
)

// Principals is an in-memory PrincipalRepository. Set Err to fail every call.
// LookupMisses makes every Find* miss while Create still enforces uniqueness,
// as when another writer commits between the lookup and the insert.
type Principals struct {
	mu           sync.Mutex
	items        []domain.Principal
	Writes       int
	Err          error
	LookupMisses bool
}

func NewPrincipals() *Principals { return &Principals{} }

func (r *Principals) Create(_ context.Context, p *domain.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.items {
		if existing.Role != p.Role {
			continue
		}
		switch p.Role {
		case domain.RolePolice:
			if existing.Name == p.Name {
				return repository.ErrDuplicate
			}
		case domain.RoleCitizen:
			if existing.Name == p.Name && existing.Phone == p.Phone {
				return repository.ErrDuplicate
			}
		case domain.RoleCommunity:
			if existing.AdminID == p.AdminID {
				return repository.ErrDuplicate
			}
		}
	}
	p.CreatedAt = time.Now()
	r.items = append(r.items, *p)
	r.Writes++
	return nil
}

func (r *Principals) find(match func(domain.Principal) bool) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if r.LookupMisses {
		return nil, pgx.ErrNoRows
	}
	for _, p := range r.items {
		if match(p) {
			found := p
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *Principals) GetByID(_ context.Context, id string) (*domain.Principal, error) {
	return r.find(func(p domain.Principal) bool { return p.ID == id })
}

func (r *Principals) FindPoliceByName(_ context.Context, name string) (*domain.Principal, error) {
	return r.find(func(p domain.Principal) bool { return p.Role == domain.RolePolice && p.Name == name })
}

func (r *Principals) FindCitizen(_ context.Context, name, phone string) (*domain.Principal, error) {
	return r.find(func(p domain.Principal) bool {
		return p.Role == domain.RoleCitizen && p.Name == name && p.Phone == phone
	})
}

func (r *Principals) FindCommunityByAdminID(_ context.Context, adminID string) (*domain.Principal, error) {
	return r.find(func(p domain.Principal) bool { return p.Role == domain.RoleCommunity && p.AdminID == adminID })
}

func (r *Principals) ListByRole(_ context.Context, role domain.Role) ([]domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []domain.Principal
	for _, p := range r.items {
		if p.Role == role {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Reports is an in-memory ReportRepository.
type Reports struct {
	mu    sync.Mutex
	items []domain.Report
	Err   error
}

func NewReports() *Reports { return &Reports{} }

func (r *Reports) Create(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	report.UpdatedAt = report.FiledAt
	r.items = append(r.items, *report)
	return nil
}

func (r *Reports) GetByID(_ context.Context, id string) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, report := range r.items {
		if report.ID == id {
			found := report
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *Reports) List(_ context.Context, filter repository.ReportFilter) ([]domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []domain.Report
	for _, report := range r.items {
		if filter.Status != nil && report.Status != *filter.Status {
			continue
		}
		out = append(out, report)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FiledAt.After(out[j].FiledAt) })
	return out, nil
}

func (r *Reports) UpdateStatus(_ context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			r.items[i].UpdatedAt = time.Now()
			found := r.items[i]
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// FAQs is an in-memory FAQRepository that counts question lookups.
type FAQs struct {
	mu      sync.Mutex
	items   []domain.FAQ
	Lookups int
	Err     error
}

func NewFAQs(seed ...domain.FAQ) *FAQs { return &FAQs{items: seed} }

func (r *FAQs) Create(_ context.Context, faq *domain.FAQ) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.items {
		if existing.Question == faq.Question {
			return repository.ErrDuplicate
		}
	}
	faq.CreatedAt = time.Now()
	r.items = append(r.items, *faq)
	return nil
}

func (r *FAQs) List(_ context.Context) ([]domain.FAQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]domain.FAQ(nil), r.items...), nil
}

func (r *FAQs) GetByQuestion(_ context.Context, question string) (*domain.FAQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lookups++
	if r.Err != nil {
		return nil, r.Err
	}
	for _, faq := range r.items {
		if faq.Question == question {
			found := faq
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Cache is an in-memory repository.Cache. Expiry is not enforced.
type Cache struct {
	mu    sync.Mutex
	items map[string][]byte
	Err   error
}

func NewCache() *Cache { return &Cache{items: map[string][]byte{}} }

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, false, c.Err
	}
	val, ok := c.items[key]
	return val, ok, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.items[key] = value
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	delete(c.items, key)
	return nil
}

// Has reports whether key is cached.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

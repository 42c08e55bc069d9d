package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"proposalforge_backend/internal/models"
	"proposalforge_backend/internal/repositories"
)

// In-memory repository fakes for service unit tests.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == strings.ToLower(u.Email) {
			return repositories.ErrUserAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = "user-" + time.Now().Format("150405.000000")
	}
	u.Email = strings.ToLower(u.Email)
	u.CreatedAt = time.Now()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateFields(userID string, fields map[string]interface{}) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "email":
			u.Email = v.(string)
		case "plan":
			u.Plan = models.UserPlan(toString(v))
		case "role":
			u.Role = models.UserRole(toString(v))
		case "password_hash":
			u.PasswordHash = v.(string)
		case "cohere_api_key":
			u.CohereAPIKey = v.(string)
		case "proposals_this_month":
			u.ProposalsThisMonth = v.(int)
		case "reset_proposals_at":
			u.ResetProposalsAt = v.(time.Time)
		}
	}
	return nil
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func (r *fakeUserRepo) Delete(userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) CountByRole(role models.UserRole) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) FindWithFilter(f repositories.UserFilter) ([]models.User, int64, error) {
	var matched []models.User
	for _, u := range r.users {
		if u.Role != models.UserRoleUser {
			continue
		}
		if f.Plan != "" && f.Plan != "All" && string(u.Plan) != f.Plan {
			continue
		}
		if f.Search != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(f.Search)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))

	start := (f.Page - 1) * f.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

type fakeProposalRepo struct {
	proposals map[string]*models.Proposal
	owners    map[string]*models.User
	nextID    int
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{
		proposals: map[string]*models.Proposal{},
		owners:    map[string]*models.User{},
	}
}

func (r *fakeProposalRepo) Create(p *models.Proposal) error {
	r.nextID++
	p.ID = fmt.Sprintf("proposal-%d", r.nextID)
	p.CreatedAt = time.Now()
	clone := *p
	r.proposals[p.ID] = &clone
	return nil
}

func (r *fakeProposalRepo) FindByID(id string) (*models.Proposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, repositories.ErrProposalNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProposalRepo) FindOwned(id, userID string) (*models.Proposal, error) {
	p, ok := r.proposals[id]
	if !ok || p.UserID != userID {
		return nil, repositories.ErrProposalNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProposalRepo) FindByUser(userID string) ([]models.Proposal, error) {
	var out []models.Proposal
	for _, p := range r.proposals {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeProposalRepo) Delete(id string) error {
	if _, ok := r.proposals[id]; !ok {
		return repositories.ErrProposalNotFound
	}
	delete(r.proposals, id)
	return nil
}

func (r *fakeProposalRepo) DeleteOwned(id, userID string) error {
	p, ok := r.proposals[id]
	if !ok || p.UserID != userID {
		return repositories.ErrProposalNotFound
	}
	delete(r.proposals, id)
	return nil
}

func (r *fakeProposalRepo) DeleteByUser(userID string) (int64, error) {
	var n int64
	for id, p := range r.proposals {
		if p.UserID == userID {
			delete(r.proposals, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeProposalRepo) CountAll() (int64, error) {
	return int64(len(r.proposals)), nil
}

func (r *fakeProposalRepo) CountByUserIDs(ids []string) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, p := range r.proposals {
		counts[p.UserID]++
	}
	out := map[string]int64{}
	for _, id := range ids {
		out[id] = counts[id]
	}
	return out, nil
}

func (r *fakeProposalRepo) FindWithFilter(f repositories.ProposalFilter) ([]repositories.ProposalWithOwner, int64, error) {
	rows := r.ownerRows()
	total := int64(len(rows))
	start := (f.Page - 1) * f.PageSize
	if start > len(rows) {
		start = len(rows)
	}
	end := start + f.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total, nil
}

func (r *fakeProposalRepo) FindRecentWithOwner(limit int) ([]repositories.ProposalWithOwner, error) {
	rows := r.ownerRows()
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *fakeProposalRepo) ownerRows() []repositories.ProposalWithOwner {
	var rows []repositories.ProposalWithOwner
	for _, p := range r.proposals {
		owner, ok := r.owners[p.UserID]
		if !ok || owner.Role != models.UserRoleUser {
			continue
		}
		rows = append(rows, repositories.ProposalWithOwner{
			ID:         p.ID,
			JobTitle:   p.JobTitle,
			Score:      p.Score,
			Tone:       p.Tone,
			Length:     p.Length,
			Experience: p.Experience,
			CreatedAt:  p.CreatedAt,
			OwnerID:    owner.ID,
			OwnerName:  owner.Name,
			OwnerEmail: owner.Email,
			OwnerPlan:  string(owner.Plan),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows
}

type fakeAnalyticsRepo struct {
	plans     map[string]int64
	monthly   []repositories.MonthCount
	daily     []repositories.DailyUsage
	byPlan    []repositories.PlanUsage
	top       []repositories.TopUser
	byTone    []repositories.ToneCount
	countries []repositories.CountryCount
}

func (r *fakeAnalyticsRepo) PlanCounts() (map[string]int64, error) {
	if r.plans == nil {
		return map[string]int64{string(models.PlanFree): 0, string(models.PlanPro): 0}, nil
	}
	return r.plans, nil
}

func (r *fakeAnalyticsRepo) MonthlyUsage(since time.Time) ([]repositories.MonthCount, error) {
	return r.monthly, nil
}

func (r *fakeAnalyticsRepo) DailyUsage(since time.Time) ([]repositories.DailyUsage, error) {
	return r.daily, nil
}

func (r *fakeAnalyticsRepo) UsageByPlan(since time.Time) ([]repositories.PlanUsage, error) {
	return r.byPlan, nil
}

func (r *fakeAnalyticsRepo) TopUsers(since time.Time, limit int) ([]repositories.TopUser, error) {
	if len(r.top) > limit {
		return r.top[:limit], nil
	}
	return r.top, nil
}

func (r *fakeAnalyticsRepo) ToneBreakdown(since time.Time) ([]repositories.ToneCount, error) {
	return r.byTone, nil
}

func (r *fakeAnalyticsRepo) CountryCounts() ([]repositories.CountryCount, error) {
	return r.countries, nil
}

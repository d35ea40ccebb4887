package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"accountsvc/internal/domain/entity"
	"accountsvc/internal/domain/repository"
	"accountsvc/pkg/helpers"
	"accountsvc/pkg/mailer"
	mailtpl "accountsvc/pkg/mailer/templates"
)

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrEmailTaken                = errors.New("email already registered")
	ErrCertificationCodeMismatch = errors.New("certification code does not match")
)

// Publisher is the fire-and-forget notification channel. Satisfied by
// helpers.RabbitPublisher in production.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService owns the account lifecycle: creation with a PENDING status,
// activation through the emailed certification code, active-gated lookups,
// profile patches and login timestamping.
type UserService struct {
	Repo         repository.UserRepository
	Codes        helpers.CodeGenerator
	Pub          Publisher
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string

	CompanyName    string
	VerifyEmailURL string
	MailEnabled    bool
}

func NewUserService(repo repository.UserRepository, codes helpers.CodeGenerator, pub Publisher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Codes: codes, Pub: pub, Logger: logger, MailEnabled: true}
}

type CreateUserInput struct {
	Email    string
	Nickname string
	Address  string
}

// UpdateUserInput is a patch: nil fields leave the stored value unchanged.
// Email, status and the certification code are not reachable through updates.
type UpdateUserInput struct {
	Nickname *string
	Address  *string
}

// Create persists a new PENDING user with a fresh certification code and
// dispatches the certification email. The email is fire-and-forget: the
// account exists even if the publish fails or the message never arrives.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	u := &entity.User{
		Email:             in.Email,
		Nickname:          in.Nickname,
		Address:           in.Address,
		Status:            entity.UserStatusPending,
		CertificationCode: s.Codes.NewCode(),
	}

	saved, err := s.Repo.Save(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.sendCertificationEmail(ctx, saved)
	s.indexUser(ctx, saved)
	return saved, nil
}

// GetByID returns the user with the given id. With requireActive set, a
// PENDING user is reported as not found, same as a missing id.
func (s *UserService) GetByID(ctx context.Context, id int64, requireActive bool) (*entity.User, error) {
	var (
		u   *entity.User
		err error
	)
	if requireActive {
		u, err = s.Repo.FindByIDAndStatus(ctx, id, entity.UserStatusActive)
	} else {
		u, err = s.Repo.FindByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail mirrors GetByID, keyed by email.
func (s *UserService) GetByEmail(ctx context.Context, email string, requireActive bool) (*entity.User, error) {
	var (
		u   *entity.User
		err error
	)
	if requireActive {
		u, err = s.Repo.FindByEmailAndStatus(ctx, email, entity.UserStatusActive)
	} else {
		u, err = s.Repo.FindByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// VerifyEmail activates a PENDING user when the supplied code matches the
// stored certification code exactly. A wrong code changes nothing. Verifying
// an already ACTIVE user with the correct code is a no-op success.
func (s *UserService) VerifyEmail(ctx context.Context, id int64, code string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.CertificationCode != code {
		return nil, ErrCertificationCodeMismatch
	}
	if u.Status == entity.UserStatusActive {
		return u, nil
	}

	u.Status = entity.UserStatusActive
	saved, err := s.Repo.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	s.indexUser(ctx, saved)
	return saved, nil
}

// Update applies the patch to nickname/address only and is allowed in any
// status.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if in.Nickname != nil {
		u.Nickname = *in.Nickname
	}
	if in.Address != nil {
		u.Address = *in.Address
	}

	saved, err := s.Repo.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	s.indexUser(ctx, saved)
	return saved, nil
}

// Login stamps the last-login time. No status gate: a PENDING user may still
// record a login.
func (s *UserService) Login(ctx context.Context, id int64) error {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	now := time.Now().UTC()
	u.LastLoginAt = &now
	if _, err := s.Repo.Save(ctx, u); err != nil {
		return err
	}
	return nil
}

func (s *UserService) sendCertificationEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Certification,
		Data: map[string]any{
			"Nickname":    u.Nickname,
			"Code":        u.CertificationCode,
			"CompanyName": s.CompanyName,
			"VerifyURL":   fmt.Sprintf("%s/%d/verify?certificationCode=%s", s.VerifyEmailURL, u.ID, u.CertificationCode),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to publish certification email")
	}
}

// indexUser mirrors the user into the search index. Only ACTIVE users are
// indexed: search is as public as the by-id lookup, and PENDING accounts must
// not be discoverable through either.
func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	if u.Status != entity.UserStatusActive {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"nickname":   u.Nickname,
		"status":     u.Status,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: strconv.FormatInt(u.ID, 10), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// Search performs a simple multi_match search on email and nickname. Results
// are filtered to ACTIVE users; the index never holds PENDING accounts, the
// query-side filter is a second line of defense.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"email^2", "nickname"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"status": entity.UserStatusActive},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

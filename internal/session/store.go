package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xxpisal/flower-shop/internal/models"
)

// TTL is the fixed lifetime of a session, counted from creation.
// There is no sliding renewal.
const TTL = 24 * time.Hour

var ErrNoSession = errors.New("no active session")

// Store persists the server-side half of a session. The client only ever
// holds the opaque token returned by Create.
type Store interface {
	Create(ctx context.Context, userID uint, userName string) (string, error)
	Get(ctx context.Context, token string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
}

type GormStore struct {
	DB     *gorm.DB
	Secret []byte
}

func NewGormStore(db *gorm.DB, secret []byte) *GormStore {
	return &GormStore{DB: db, Secret: secret}
}

func (s *GormStore) hash(token string) string {
	mac := hmac.New(sha256.New, s.Secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *GormStore) Create(ctx context.Context, userID uint, userName string) (string, error) {
	token := uuid.NewString()
	now := time.Now().UTC()

	sess := models.Session{
		TokenHash: s.hash(token),
		UserID:    userID,
		UserName:  userName,
		ExpiresAt: now.Add(TTL),
		CreatedAt: now,
	}
	if err := s.DB.WithContext(ctx).Create(&sess).Error; err != nil {
		return "", err
	}
	return token, nil
}

func (s *GormStore) Get(ctx context.Context, token string) (*models.Session, error) {
	var sess models.Session
	err := s.DB.WithContext(ctx).Where("token_hash = ?", s.hash(token)).First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	if time.Now().After(sess.ExpiresAt) {
		// Expired rows are pruned lazily on access.
		s.DB.WithContext(ctx).Delete(&sess)
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *GormStore) Destroy(ctx context.Context, token string) error {
	res := s.DB.WithContext(ctx).Where("token_hash = ?", s.hash(token)).Delete(&models.Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoSession
	}
	return nil
}

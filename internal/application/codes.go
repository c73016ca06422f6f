package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
	"github.com/oksasatya/go-user-auth-api/pkg/helpers"
	"github.com/oksasatya/go-user-auth-api/pkg/mailer/templates"
)

// issueCode stores a fresh code for userID. Earlier codes stay valid.
func (s *Service) issueCode(ctx context.Context, store repository.Store, userID int64, purpose entity.CodePurpose) (string, error) {
	code, err := helpers.GenerateCode()
	if err != nil {
		return "", err
	}
	if err := store.Codes().Create(ctx, &entity.EmailCode{Code: code, UserID: userID, Purpose: purpose}); err != nil {
		return "", err
	}
	return code, nil
}

// codeCutoff is the oldest creation time still accepted, or zero when codes
// never expire.
func (s *Service) codeCutoff() time.Time {
	if s.CodeTTL <= 0 {
		return time.Time{}
	}
	return s.now().Add(-s.CodeTTL)
}

// consumeCode looks up code, runs apply for its owner and deletes the code in
// one transaction. Unknown, expired or already used codes give ErrNotFound;
// if apply fails nothing is deleted.
func (s *Service) consumeCode(ctx context.Context, op, code string, purpose entity.CodePurpose,
	apply func(ctx context.Context, tx repository.Store, userID int64) error) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrNotFound
	}
	err := s.Store.WithinTx(ctx, func(ctx context.Context, tx repository.Store) error {
		c, err := tx.Codes().GetByCode(ctx, code, purpose, s.codeCutoff())
		if err != nil {
			return err
		}
		if err := apply(ctx, tx, c.UserID); err != nil {
			return err
		}
		return tx.Codes().Delete(ctx, c.ID)
	})
	return storageError(op, err)
}

// notify renders tpl for u and sends it. Failures are logged and counted but
// never returned: the store change that triggered the mail stands.
func (s *Service) notify(ctx context.Context, tpl string, u *entity.User, link string) {
	opts := []templates.Option{templates.WithActionURL(link)}
	if s.CodeTTL > 0 {
		opts = append(opts, templates.WithExpiresAt(s.now().Add(s.CodeTTL)))
	}
	data := templates.NewEmailData(s.Brand, tpl, u.FirstName, u.Email, opts...)

	log := s.Logger.WithFields(logrus.Fields{"template": tpl, "user_id": u.ID})
	subject, text, html, err := templates.Render(tpl, data)
	if err != nil {
		s.Metrics.email(tpl, err)
		log.WithError(err).Error("render email failed")
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.MailTimeout)
	defer cancel()
	err = s.Mailer.Send(sendCtx, u.Email, subject, text, html)
	s.Metrics.email(tpl, err)
	if err != nil {
		log.WithError(err).Warn("send email failed")
		return
	}
	log.Debug("email sent")
}

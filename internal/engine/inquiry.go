package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Spok95/catalog-bot/internal/callback"
	"github.com/Spok95/catalog-bot/internal/dialog"
	"github.com/Spok95/catalog-bot/internal/domain/catalog"
	"github.com/Spok95/catalog-bot/internal/domain/inquiries"
	"github.com/Spok95/catalog-bot/internal/domain/items"
	"github.com/Spok95/catalog-bot/internal/infra/metrics"
)

var (
	ErrEmptyInput  = errors.New("empty input")
	ErrTooLong     = errors.New("input too long")
	ErrPhoneFormat = errors.New("phone number does not match policy")
)

// Ограничения в символах
const (
	maxNameLen        = 128
	maxPhoneLen       = 32
	maxDescriptionLen = 2000
)

// startInquiry запрос цены по конкретной позиции.
func (e *Engine) startInquiry(ctx context.Context, s *dialog.Session, t catalog.Type, id int64) ([]Reply, error) {
	it, err := e.items.GetByID(ctx, t, id)
	if errors.Is(err, items.ErrNotFound) {
		return e.notFound(ctx, s, t)
	}
	if err != nil {
		return nil, fmt.Errorf("start inquiry %s/%d: %w", t, id, err)
	}
	// стек оставляем, чтобы «назад» вернул к карточке
	s.State = dialog.StateAwaitName
	s.Item = &dialog.ItemRef{Type: t, ID: id, Name: it.Name}
	s.Draft = dialog.Draft{SubmissionKey: e.opts.NewKey()}
	return []Reply{prompt(fmt.Sprintf(textInquiryFor, it.Name) + "\n\n" + textAskName)}, nil
}

func (e *Engine) startGeneralInquiry(s *dialog.Session) []Reply {
	s.Clear()
	s.State = dialog.StateAwaitName
	s.Draft = dialog.Draft{SubmissionKey: e.opts.NewKey()}
	return []Reply{prompt(textGeneralInquiry + "\n\n" + textAskName)}
}

func (e *Engine) onInquiryText(s *dialog.Session, text string) ([]Reply, error) {
	switch s.State {
	case dialog.StateAwaitName:
		v, err := field(text, maxNameLen)
		if err != nil {
			return e.invalid(s, err, maxNameLen, textAskName), nil
		}
		s.Draft.Name = v
		s.State = dialog.StateAwaitPhone
		return []Reply{prompt(textAskPhone)}, nil

	case dialog.StateAwaitPhone:
		v, err := field(text, maxPhoneLen)
		if err == nil && e.opts.PhonePattern != nil && !e.opts.PhonePattern.MatchString(v) {
			err = ErrPhoneFormat
		}
		if err != nil {
			return e.invalid(s, err, maxPhoneLen, textAskPhone), nil
		}
		s.Draft.Phone = v
		s.State = dialog.StateAwaitDescription
		return []Reply{prompt(textAskDescription)}, nil

	case dialog.StateAwaitDescription:
		v, err := field(text, maxDescriptionLen)
		if err != nil {
			return e.invalid(s, err, maxDescriptionLen, textAskDescription), nil
		}
		s.Draft.Description = v
		s.State = dialog.StateAwaitConfirm
		return []Reply{summary(s)}, nil

	case dialog.StateAwaitConfirm:
		return []Reply{{Text: textUseButtons}, summary(s)}, nil
	}
	return nil, fmt.Errorf("inquiry text in state %q", s.State)
}

// field обрезает пробелы по краям; переводы строк внутри сохраняются.
func field(text string, limit int) (string, error) {
	v := strings.TrimSpace(text)
	if v == "" {
		return "", ErrEmptyInput
	}
	if utf8.RuneCountInString(v) > limit {
		return "", ErrTooLong
	}
	return v, nil
}

func (e *Engine) invalid(s *dialog.Session, err error, limit int, ask string) []Reply {
	metrics.Errors.WithLabelValues("validation").Inc()
	e.log.Debug("inquiry input rejected", "user_id", s.UserID, "state", s.State, "err", err)

	var msg string
	switch {
	case errors.Is(err, ErrTooLong):
		msg = fmt.Sprintf(textTooLong, limit)
	case errors.Is(err, ErrPhoneFormat):
		msg = textBadPhone
	default:
		msg = textEmptyInput
	}
	return []Reply{prompt(msg + "\n" + ask)}
}

// confirm пишет запрос ровно один раз. Повторное нажатие попадает в idle и ничего не делает.
func (e *Engine) confirm(ctx context.Context, s *dialog.Session) ([]Reply, error) {
	if s.State != dialog.StateAwaitConfirm {
		return []Reply{{Text: textNothingConfirm, Menu: true}}, nil
	}
	if s.Draft.SubmissionKey == "" {
		s.Draft.SubmissionKey = e.opts.NewKey()
	}

	in := inquiries.Inquiry{
		UserID:        s.UserID,
		Name:          s.Draft.Name,
		Phone:         s.Draft.Phone,
		Description:   s.Draft.Description,
		Status:        inquiries.StatusNew,
		SubmissionKey: s.Draft.SubmissionKey,
	}
	if s.Item != nil {
		if err := in.Target(s.Item.Type, s.Item.ID); err != nil {
			return nil, fmt.Errorf("inquiry target: %w", err)
		}
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("inquiry draft: %w", err)
	}

	created, err := e.inquiries.Create(ctx, &in)
	if err != nil {
		// черновик остаётся, пользователь может нажать «подтвердить» ещё раз
		metrics.Inquiries.WithLabelValues("failed").Inc()
		e.log.Warn("inquiry commit failed", "user_id", s.UserID, "err", err)
		return []Reply{{Text: textCommitFailed, Buttons: confirmRows()}}, nil
	}

	item := s.Item
	s.Clear()
	if !created {
		metrics.Inquiries.WithLabelValues("duplicate").Inc()
		e.log.Info("inquiry already committed", "user_id", in.UserID, "submission_key", in.SubmissionKey)
		return []Reply{{Text: textThanks, Menu: true}}, nil
	}

	metrics.Inquiries.WithLabelValues("committed").Inc()
	e.log.Info("inquiry committed", "user_id", in.UserID, "inquiry_id", in.ID)
	if e.notifier != nil {
		e.notifier.InquiryCommitted(ctx, in, item)
	}
	return []Reply{{Text: textThanks, Menu: true}}, nil
}

func (e *Engine) cancel(s *dialog.Session) []Reply {
	if s.State == dialog.StateIdle {
		return []Reply{{Text: textNothingCancel, Menu: true}}
	}
	s.Clear()
	return []Reply{{Text: textCancelled, Menu: true}}
}

func summary(s *dialog.Session) Reply {
	target := textGeneralInquiry
	if s.Item != nil {
		target = s.Item.Name
	}
	return Reply{
		Text:    fmt.Sprintf(textSummary, target, s.Draft.Name, s.Draft.Phone, s.Draft.Description),
		Buttons: confirmRows(),
	}
}

func prompt(text string) Reply {
	return Reply{Text: text, Buttons: [][]Button{{{Text: textCancel, Data: callback.Cancel()}}}}
}

func confirmRows() [][]Button {
	return [][]Button{{
		{Text: textConfirm, Data: callback.Confirm()},
		{Text: textCancel, Data: callback.Cancel()},
	}}
}

func statusLabel(st inquiries.Status) string {
	switch st {
	case inquiries.StatusInProgress:
		return "in progress"
	case inquiries.StatusCompleted:
		return "completed"
	}
	return "new"
}

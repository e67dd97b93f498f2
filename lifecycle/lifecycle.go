// Package lifecycle drives the issue state machine and its ledger side
// effects: Unclaimed -> UnderReview on a combined claim-and-resolve
// submission, UnderReview -> Resolved only through an external audit that
// is not modeled here.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"riverwatch/issues"
	"riverwatch/ledger"
	"riverwatch/oss"

	"github.com/apex/log"
	"github.com/shopspring/decimal"
)

var ErrValidation = errors.New("validation failed")

const (
	// MinSolutionRunes is the minimum length of a resolution report.
	MinSolutionRunes = 50
	// MinDonation is the smallest accepted points donation.
	MinDonation = 10
)

// AuditFunc receives every state-changing operation the controller
// performs. It is the extension point for a future review/approval step.
type AuditFunc func(event, user string, issueID int64, points int)

func logAudit(event, user string, issueID int64, points int) {
	log.Infof("audit: %s user=%s issue=%d points=%d", event, user, issueID, points)
}

type Controller struct {
	store    issues.Store
	ledger   ledger.Ledger
	uploader oss.Uploader
	pick     Picker
	audit    AuditFunc
	now      func() time.Time
}

func NewController(store issues.Store, lg ledger.Ledger, uploader oss.Uploader, pick Picker, audit AuditFunc) *Controller {
	if pick == nil {
		pick = RandomPicker
	}
	if audit == nil {
		audit = logAudit
	}
	return &Controller{
		store:    store,
		ledger:   lg,
		uploader: uploader,
		pick:     pick,
		audit:    audit,
		now:      time.Now,
	}
}

// SubmitReport validates the report, uploads the photo and only then
// touches the store and the ledger, so a failed upload leaves no partial
// state behind. The upload runs before any store access on purpose: the
// store lock must not be held across a slow external call.
func (c *Controller) SubmitReport(ctx context.Context, segment string, categories []string, description, reporterID string, media []byte, filename string) (issues.Issue, error) {
	if len(media) == 0 {
		return issues.Issue{}, withValidation("a photo is required")
	}
	if description == "" {
		return issues.Issue{}, withValidation("description is required")
	}
	if len(categories) == 0 {
		return issues.Issue{}, withValidation("at least one problem category is required")
	}
	if reporterID == "" {
		return issues.Issue{}, withValidation("reporter id is required")
	}

	imageURL, err := c.uploader.Upload(ctx, media, filename, "uploads")
	if err != nil {
		log.Errorf("Photo upload failed for reporter %s: %v", reporterID, err)
		return issues.Issue{}, err
	}

	issue := issues.Issue{
		ReportedAt:    c.now(),
		Segment:       segment,
		Categories:    categories,
		Description:   description,
		Status:        issues.Unclaimed,
		ReporterID:    reporterID,
		ReportReward:  c.pick(ReportTiers),
		ImageURL:      imageURL,
		ResolveReward: c.pick(ResolveTiers),
	}

	id, err := c.store.Append(issue)
	if err != nil {
		log.Errorf("Failed to append issue for reporter %s: %v", reporterID, err)
		return issues.Issue{}, err
	}
	issue.ID = id

	if err := c.ledger.Credit(reporterID, issue.ReportReward); err != nil {
		log.Errorf("Failed to credit report reward to %s: %v", reporterID, err)
		return issues.Issue{}, err
	}

	c.audit("report_submitted", reporterID, id, issue.ReportReward)
	return issue, nil
}

// ClaimAndResolve claims an Unclaimed issue and submits its resolution
// report in one step. The resolve reward is credited immediately on
// submission rather than on review approval; the audit hook records the
// auto-approval so a real review step can attach there later.
func (c *Controller) ClaimAndResolve(issueID int64, resolverID, solution string, proofPhotos [][]byte) (issues.Issue, error) {
	if resolverID == "" {
		return issues.Issue{}, withValidation("resolver id is required")
	}
	if utf8.RuneCountInString(solution) < MinSolutionRunes {
		return issues.Issue{}, withValidation("solution report is too short")
	}
	if len(proofPhotos) == 0 {
		return issues.Issue{}, withValidation("at least one proof photo is required")
	}

	issue, err := c.store.MarkUnderReview(issueID, resolverID)
	if err != nil {
		return issues.Issue{}, err
	}

	if err := c.ledger.Credit(resolverID, issue.ResolveReward); err != nil {
		log.Errorf("Failed to credit resolve reward to %s: %v", resolverID, err)
		return issues.Issue{}, err
	}

	c.audit("resolution_submitted", resolverID, issueID, issue.ResolveReward)
	return issue, nil
}

// Redeem spends points directly by cost.
func (c *Controller) Redeem(user string, cost int) error {
	if err := c.ledger.Debit(user, cost); err != nil {
		return err
	}
	c.audit("points_redeemed", user, 0, cost)
	return nil
}

// RedeemItem spends points on one catalog item.
func (c *Controller) RedeemItem(user, itemID string) (CatalogItem, error) {
	item, ok := findCatalogItem(itemID)
	if !ok {
		return CatalogItem{}, issues.ErrNotFound
	}
	if err := c.ledger.Debit(user, item.Cost); err != nil {
		return CatalogItem{}, err
	}
	c.audit("item_redeemed", user, 0, item.Cost)
	return item, nil
}

// Donate moves points to the river replenishment fund and reports the
// volume the donation pays for.
func (c *Controller) Donate(user string, amount int) (decimal.Decimal, error) {
	if amount < MinDonation {
		return decimal.Zero, ledger.ErrInvalidAmount
	}
	if err := c.ledger.Debit(user, amount); err != nil {
		return decimal.Zero, err
	}
	c.audit("points_donated", user, 0, amount)
	return DonationLiters(amount), nil
}

// BalanceOf exposes the ledger to the presentation layer.
func (c *Controller) BalanceOf(user string) (int, error) {
	return c.ledger.BalanceOf(user)
}

func withValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	awspkg "github.com/Maharshi2203/Sattys-main/pkg/aws"
	"go.uber.org/zap"
)

// DefaultWhatsAppPhone receives storefront orders when none is configured.
const DefaultWhatsAppPhone = "918200892368"

// CheckoutService turns a cart into a WhatsApp order link.
type CheckoutService interface {
	WhatsAppLink(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutLink, *ServiceError)
}

// OrderLine is a priced cart line.
type OrderLine struct {
	Name     string
	Quantity int
	Amount   float64
}

type checkoutServiceImpl struct {
	products productFinder
	phone    string
	metrics  Metrics
	logger   *zap.Logger
}

type productFinder interface {
	FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
}

// NewCheckoutService creates a CheckoutService sending orders to phone.
func NewCheckoutService(products productFinder, phone string, metrics Metrics, logger *zap.Logger) CheckoutService {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if phone == "" {
		phone = DefaultWhatsAppPhone
	}
	return &checkoutServiceImpl{
		products: products,
		phone:    phone,
		metrics:  metricsOrNoop(metrics),
		logger:   logger,
	}
}

func (s *checkoutServiceImpl) WhatsAppLink(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutLink, *ServiceError) {
	if req == nil || len(req.Items) == 0 {
		return nil, badRequest("Cart is empty")
	}

	ids := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, badRequest("Quantity must be at least 1")
		}
		ids = append(ids, item.ProductID)
	}

	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load cart products", zap.Error(err))
		return nil, internal("Failed to build order")
	}
	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	lines := make([]OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, badRequest(fmt.Sprintf("Product %d not found", item.ProductID))
		}
		if p.StockStatus == models.StockOut {
			return nil, badRequest(fmt.Sprintf("%s is out of stock", p.Name))
		}
		lines = append(lines, OrderLine{
			Name:     p.Name,
			Quantity: item.Quantity,
			Amount:   models.RoundPrice(p.FinalPrice * float64(item.Quantity)),
		})
	}

	message, total := OrderMessage(lines)
	_ = s.metrics.RecordCount(ctx, awspkg.MetricCheckoutLinks, nil)
	s.logger.Info("Checkout link built", zap.Int("items", len(lines)), zap.Float64("total", total))
	return &models.CheckoutLink{
		URL:     WhatsAppURL(s.phone, message),
		Message: message,
		Total:   total,
	}, nil
}

// OrderMessage renders the order text and returns it with the cart total.
func OrderMessage(lines []OrderLine) (string, float64) {
	var b strings.Builder
	b.WriteString("*New Order from Satty's Website*\n\n")

	total := 0.0
	for i, l := range lines {
		fmt.Fprintf(&b, "%d. *%s* (x%d) - ₹%s\n", i+1, l.Name, l.Quantity, FormatINR(l.Amount))
		total += l.Amount
	}
	total = models.RoundPrice(total)

	fmt.Fprintf(&b, "\n*Total Amount: ₹%s*\n\n", FormatINR(total))
	b.WriteString("Please confirm my order. Thank you!")
	return b.String(), total
}

// WhatsAppURL builds a wa.me deep link carrying message.
func WhatsAppURL(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// FormatINR formats an amount with Indian digit grouping (12,34,567.5).
// At most two decimals are shown and trailing zeros are dropped.
func FormatINR(v float64) string {
	s := strconv.FormatFloat(models.RoundPrice(v), 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	grouped := intPart
	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		grouped = strings.Join(groups, ",") + "," + tail
	}

	if frac == "" {
		return sign + grouped
	}
	return sign + grouped + "." + frac
}

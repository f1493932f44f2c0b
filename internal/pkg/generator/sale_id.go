package generator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/donbacco/pos-service/internal/pkg/clock"
)

// SaleIDGenerator produces ticket identifiers of the form
// SALE-<unix-millis>-<uuid fragment>. The millisecond prefix keeps ids
// sortable by issue time; the fragment disambiguates same-millisecond sales.
type SaleIDGenerator struct {
	clock clock.Clock
}

func NewSaleIDGenerator(clk clock.Clock) *SaleIDGenerator {
	return &SaleIDGenerator{clock: clk}
}

func (g *SaleIDGenerator) Generate() string {
	fragment := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("SALE-%d-%s", g.clock.Now().UnixMilli(), fragment)
}

package billing

import (
	"context"
	"fmt"
	"log"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// MidtransChecker membaca status transaksi langganan di Midtrans.
// Read-only: satu-satunya konsumen adalah lapse-check saat sekolah
// berbayar dibaca lewat masa berlakunya.
type MidtransChecker struct {
	client  coreapi.Client
	enabled bool
}

func NewMidtransChecker(serverKey string, production bool) *MidtransChecker {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	c := &MidtransChecker{enabled: serverKey != ""}
	if !c.enabled {
		log.Printf("[WARN] MIDTRANS_SERVER_KEY kosong — billing checker menganggap semua langganan aktif")
		return c
	}
	c.client.New(serverKey, env)
	return c
}

// Active melaporkan apakah transaksi langganan masih dibayar penuh.
// Error berarti provider tidak bisa dihubungi; pemanggil yang memutuskan
// fail-open atau tidak.
func (c *MidtransChecker) Active(ctx context.Context, subscriptionID string) (bool, error) {
	if !c.enabled {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	resp, err := c.client.CheckTransaction(subscriptionID)
	if err != nil {
		return false, fmt.Errorf("midtrans check %s: %w", subscriptionID, err)
	}

	switch resp.TransactionStatus {
	case "settlement", "capture":
		return true, nil
	default:
		return false, nil
	}
}

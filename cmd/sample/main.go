// Command sample builds a small test order and submits it through the
// configured spreadsheet endpoint. Used to smoke-check a new Apps Script
// deployment before pointing the storefront at it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dillkhus/order-api/internal/config"
	"github.com/dillkhus/order-api/internal/enum"
	"github.com/dillkhus/order-api/internal/menu"
	"github.com/dillkhus/order-api/internal/order"
	"github.com/dillkhus/order-api/internal/sheets"
)

func main() {
	url := flag.String("url", "", "Spreadsheet endpoint URL (falls back to SHEETS_URL)")
	mode := flag.String("mode", "", "Transport mode: opaque or json (falls back to SHEETS_MODE)")
	dryRun := flag.Bool("dry-run", false, "Print the payload without sending it")
	flag.Parse()

	cfg := config.Load()
	if *url == "" {
		*url = cfg.SheetsURL
	}
	if *mode == "" {
		*mode = cfg.SheetsMode
	}
	if !enum.IsTransportMode(*mode) {
		log.Fatalf("invalid mode %q: must be %q or %q", *mode, enum.TransportOpaque, enum.TransportJSON)
	}

	catalog := menu.NewDefault()
	cart := order.NewCart()

	price, _ := catalog.ItemPrice("phuchka-solo", true)
	if err := cart.SetItemQuantity("phuchka-solo", 2, price); err != nil {
		log.Fatalf("build sample cart: %v", err)
	}
	if err := cart.SetComboQuantity(enum.ComboVeg, 1, catalog.ComboPrice(true)); err != nil {
		log.Fatalf("build sample cart: %v", err)
	}
	cart.SetCustomerInfo(order.CustomerInfo{
		Name:        "Smoke Test",
		Mobile:      "600000000",
		PaymentType: enum.PaymentCash,
	})

	if *dryRun {
		payload := order.SubmissionPayload{
			OrderID:   order.NewOrderID(),
			PaymentID: order.NewPaymentID(),
			Order:     cart.Snapshot(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			log.Fatalf("encode payload: %v", err)
		}
		return
	}

	client := sheets.NewClient(*url, *mode, sheets.DefaultRetryPolicy(), nil)
	confirmation, err := cart.Submit(context.Background(), client)
	if err != nil {
		log.Fatalf("submit sample order: %v", err)
	}

	fmt.Printf("Order %s submitted (payment %s, total %s)\n",
		confirmation.OrderID, confirmation.PaymentID, confirmation.Total.StringFixed(2))
	if confirmation.BonusEligible {
		fmt.Println("Order qualifies for the lucky draw bonus")
	}
}

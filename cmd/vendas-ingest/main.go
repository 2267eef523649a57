// Command vendas-ingest appends a sale record to the store and announces
// it on the feed exchange, so a running dashboard picks it up without a
// reload. Intended for manual backfills and smoke tests.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"vendas/internal/cli"
	"vendas/internal/core"
	"vendas/internal/feed"
	"vendas/internal/log"
)

func main() {
	var (
		id        = flag.String("id", "", "record identifier (defaults to the current unix nano)")
		value     = flag.String("value", "", "sale value, decimal reais (e.g. 1234.56)")
		date      = flag.String("date", "", "sale date (defaults to now, UTC)")
		payment   = flag.String("payment", "", "payment detail text")
		partnerID = flag.Int64("partner-id", 0, "partner identifier")
		partner   = flag.String("partner", "", "partner name")
		item      = flag.String("item", "", "item name")
		state     = flag.String("state", "", "UF code")
		noPublish = flag.Bool("no-publish", false, "skip the feed announcement")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(log.ComponentIngest)
	sl := log.NewStructuredLogger(logger)
	cfg := cli.LoadAndValidateConfig(logger)

	cents, err := core.ParseDecimalToCents(*value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -value: %v\n", err)
		os.Exit(2)
	}

	sale := core.Sale{
		ID:            *id,
		ValueCents:    cents,
		SaleDate:      *date,
		PaymentDetail: *payment,
		PartnerID:     *partnerID,
		PartnerName:   *partner,
		ItemName:      *item,
		State:         *state,
	}
	if sale.ID == "" {
		sale.ID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	if sale.SaleDate == "" {
		sale.SaleDate = time.Now().UTC().Format("2006-01-02 15:04:05")
	}
	if err := sale.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid record: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := cli.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend",
			log.FieldError, err.Error(), "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.InsertSale(ctx, sale); err != nil {
		sl.LogError(ctx, "Insert failed", err, log.ComponentIngest, log.OpInsert,
			log.NewFields().WithSale(sale.ID, sale.PartnerName, sale.ItemName, sale.ValueCents))
		os.Exit(1)
	}
	sl.LogSaleIngested(ctx, sale.ID, sale.PartnerName, sale.ItemName, sale.ValueCents)

	if *noPublish {
		return
	}

	client, err := feed.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Feed connection failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer client.Close()

	if err := client.PublishSale(ctx, feed.NewSaleCreatedMessage(sale)); err != nil {
		logger.Error("Feed publish failed",
			log.FieldOperation, log.OpPublish,
			log.FieldSaleID, sale.ID,
			log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Record announced on feed",
		log.FieldOperation, log.OpPublish,
		log.FieldSaleID, sale.ID)
}

package purchase

import "github.com/jmoiron/sqlx"

// Package-level services, wired by the root command.
var (
	DefaultStore Store
	Orders       *OrderPlacer
	Ledger       *EstimateLedger
	Tracker      *TrackingReconciler
	Packer       *PackingIssuer
	Payments     *PaymentLinkAggregator
)

// Setup wires the services onto the global DB connection and the external
// API clients.
func Setup(db *sqlx.DB, market MarketplaceAPI, carrier CarrierAPI) {
	Db = db
	store := &SQLStore{Db: db}
	DefaultStore = store
	Orders = &OrderPlacer{Store: store, Market: market}
	Ledger = &EstimateLedger{Store: store}
	Tracker = &TrackingReconciler{Store: store, Market: market}
	Packer = &PackingIssuer{Store: store, Carrier: carrier}
	Payments = &PaymentLinkAggregator{Store: store, Market: market}
}

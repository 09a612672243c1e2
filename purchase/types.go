package purchase

import "database/sql"

// Shipment master status codes.
const (
	StatusRequest          = "REQUEST"
	StatusPaymentCompleted = "PAYMENT_COMPLETED"
)

// ShipmentMst is one logistical unit (one center, one inbound window).
type ShipmentMst struct {
	ShipmentMstNo     int    `db:"order_shipment_mst_no"`
	OrderMstNo        int    `db:"order_mst_no"`
	CompanyNo         int    `db:"company_no"`
	DisplayCenterName string `db:"display_center_name"`
	CenterNo          string `db:"center_no"`
	Edd               string `db:"edd"`
	StatusCd          string `db:"order_shipment_mst_status_cd"`
	EstimatedYn       int    `db:"estimated_yn"`
	DelYn             int    `db:"del_yn"`
}

// ShipmentDtl is one SKU quantity destined to one center within one shipment.
type ShipmentDtl struct {
	ShipmentDtlNo          int            `db:"order_shipment_dtl_no"`
	ShipmentMstNo          int            `db:"order_shipment_mst_no"`
	PackingMstNo           sql.NullInt64  `db:"order_shipment_packing_mst_no"`
	CompanyNo              sql.NullInt64  `db:"company_no"`
	OrderNumber            string         `db:"order_number"`
	SkuID                  string         `db:"sku_id"`
	SkuName                string         `db:"sku_name"`
	ConfirmedQuantity      int            `db:"confirmed_quantity"`
	Link                   string         `db:"link"`
	LinkedSpecID           string         `db:"linked_spec_id"`
	LinkedOpenUID          string         `db:"linked_open_uid"`
	PurchaseOrderNumber    sql.NullString `db:"purchase_order_number"`
	PurchaseTrackingNumber sql.NullString `db:"purchase_tracking_number"`
	DeliveryStatus         sql.NullString `db:"delivery_status"`
	DelYn                  int            `db:"del_yn"`
}

// Estimate aggregates product and box lines under one purchase order.
type Estimate struct {
	EstimateNo         int     `db:"order_shipment_estimate_no"`
	OrderMstNo         int     `db:"order_mst_no"`
	CompanyNo          int     `db:"company_no"`
	EstimateID         string  `db:"estimate_id"`
	EstimateDate       string  `db:"estimate_date"`
	ProductTotalAmount float64 `db:"product_total_amount"`
	VinylTotalAmount   float64 `db:"vinyl_total_amount"`
	BoxTotalAmount     float64 `db:"box_total_amount"`
	EstimateTotal      float64 `db:"estimate_total_amount"`
	DepositYn          int     `db:"deposit_yn"`
	CompletedYn        int     `db:"completed_yn"`
	AccountNo1688      int     `db:"account_info_no_1688"`
	DelYn              int     `db:"del_yn"`
	CreatedBy          int     `db:"created_by"`
}

// EstimateProduct is one priced estimate row for one shipment line item.
// A failed pricing attempt keeps fail_yn=1 and the reason in remark.
type EstimateProduct struct {
	EstimateProductNo  int            `db:"order_shipment_estimate_product_no"`
	EstimateNo         int            `db:"order_shipment_estimate_no"`
	ShipmentMstNo      sql.NullInt64  `db:"order_shipment_mst_no"`
	ShipmentDtlNo      sql.NullInt64  `db:"order_shipment_dtl_no"`
	CompanyNo          int            `db:"company_no"`
	CenterNo           string         `db:"center_no"`
	SkuID              string         `db:"sku_id"`
	SkuName            string         `db:"sku_name"`
	Bundle             string         `db:"bundle"`
	PurchaseQuantity   int            `db:"purchase_quantity"`
	ProductUnitPrice   float64        `db:"product_unit_price"`
	ProductTotalAmount float64        `db:"product_total_amount"`
	VinylSpecCd        string         `db:"package_vinyl_spec_cd"`
	VinylUnitPrice     float64        `db:"package_vinyl_spec_unit_price"`
	VinylTotalAmount   float64        `db:"package_vinyl_spec_total_amount"`
	FailYn             int            `db:"fail_yn"`
	TotalAmount        float64        `db:"total_amount"`
	PurchaseOrderNo    sql.NullString `db:"purchase_order_number"`
	PurchaseTrackingNo sql.NullString `db:"purchase_tracking_number"`
	PurchasePayLink    sql.NullString `db:"purchase_pay_link"`
	Remark             string         `db:"remark"`
	DelYn              int            `db:"del_yn"`
}

// EstimateBox is one per-center box-count line.
type EstimateBox struct {
	EstimateBoxNo   int     `db:"order_shipment_estimate_box_no"`
	EstimateNo      int     `db:"order_shipment_estimate_no"`
	CompanyNo       int     `db:"company_no"`
	CenterNo        string  `db:"center_no"`
	BoxSpecCd       string  `db:"package_box_spec_cd"`
	BoxSpecUnitCost float64 `db:"package_box_spec_unit_price"`
	BoxQuantity     int     `db:"box_quantity"`
	TotalAmount     float64 `db:"total_amount"`
	DelYn           int     `db:"del_yn"`
}

// PackingMst is one physical packing box; it carries the carrier tracking
// number once issued.
type PackingMst struct {
	PackingMstNo   int            `db:"order_shipment_packing_mst_no"`
	ShipmentMstNo  int            `db:"order_shipment_mst_no"`
	CompanyNo      sql.NullInt64  `db:"company_no"`
	BoxName        string         `db:"box_name"`
	BoxSpecCd      string         `db:"package_box_spec_cd"`
	TrackingNumber sql.NullString `db:"tracking_number"`
	CenterNo       string         `db:"center_no"`
	CenterName     string         `db:"display_center_name"`
	DelYn          int            `db:"del_yn"`
}

// OrderCandidate is one line item considered for external order placement.
type OrderCandidate struct {
	ShipmentDtlNo int    `db:"order_shipment_dtl_no"`
	SkuID         string `db:"sku_id"`
	OpenUID       string `db:"linked_open_uid"`
	Link          string `db:"link"`
	SpecID        string `db:"linked_spec_id"`
	Quantity      int    `db:"confirmed_quantity"`
}

// TrackingUpdate is one fan-out update for every line item sharing an
// order number.
type TrackingUpdate struct {
	OrderNumber        string
	TrackingNumber     string
	DeliveryStatus     string
	LogisticsCompanyID string
}

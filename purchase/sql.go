package purchase

// SQL
const (
	QueryOrderCandidates string = `SELECT osd.order_shipment_dtl_no,
       osd.sku_id,
       IFNULL(osd.linked_open_uid, '') AS linked_open_uid,
       IFNULL(osd.link, '')            AS link,
       IFNULL(osd.linked_spec_id, '')  AS linked_spec_id,
       osd.confirmed_quantity
FROM ORDER_SHIPMENT_DTL osd
WHERE osd.order_shipment_dtl_no IN (?)
  AND osd.del_yn = 0
ORDER BY osd.order_shipment_dtl_no`

	UpdateDtlOrderNumber string = `UPDATE ORDER_SHIPMENT_DTL
SET purchase_order_number = ?,
    updated_at            = NOW()
WHERE order_shipment_dtl_no IN (?)
  AND del_yn = 0`

	UpdateEstimateProductOrderNumber string = `UPDATE ORDER_SHIPMENT_ESTIMATE_PRODUCT
SET purchase_order_number = ?,
    updated_at            = NOW()
WHERE order_shipment_dtl_no IN (?)
  AND fail_yn = 0
  AND del_yn = 0`

	InsertEstimate string = `INSERT INTO ORDER_SHIPMENT_ESTIMATE
(order_mst_no, company_no, estimate_id, estimate_date, product_total_amount, vinyl_total_amount,
 box_total_amount, estimate_total_amount, deposit_yn, completed_yn, account_info_no_1688, del_yn, created_by)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, 0, ?)`

	InsertEstimateProduct string = `INSERT INTO ORDER_SHIPMENT_ESTIMATE_PRODUCT
(order_shipment_estimate_no, order_shipment_mst_no, order_shipment_dtl_no, company_no, center_no,
 sku_id, sku_name, bundle, purchase_quantity, product_unit_price, product_total_amount,
 package_vinyl_spec_cd, package_vinyl_spec_unit_price, package_vinyl_spec_total_amount,
 fail_yn, total_amount, remark, del_yn, created_by)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`

	InsertEstimateBox string = `INSERT INTO ORDER_SHIPMENT_ESTIMATE_BOX
(order_shipment_estimate_no, company_no, center_no, package_box_spec_cd,
 package_box_spec_unit_price, box_quantity, total_amount, del_yn, created_by)
VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)`

	UpdateShipmentEstimated string = `UPDATE ORDER_SHIPMENT_MST
SET estimated_yn = 1,
    updated_at   = NOW()
WHERE order_shipment_mst_no IN (?)
  AND del_yn = 0`

	QueryEstimate string = `SELECT order_shipment_estimate_no,
       order_mst_no,
       company_no,
       estimate_id,
       estimate_date,
       product_total_amount,
       vinyl_total_amount,
       box_total_amount,
       estimate_total_amount,
       deposit_yn,
       completed_yn,
       IFNULL(account_info_no_1688, 0) AS account_info_no_1688,
       del_yn,
       created_by
FROM ORDER_SHIPMENT_ESTIMATE
WHERE order_shipment_estimate_no = ?
  AND del_yn = 0`

	QueryEstimateProducts string = `SELECT order_shipment_estimate_product_no,
       order_shipment_estimate_no,
       order_shipment_mst_no,
       order_shipment_dtl_no,
       company_no,
       center_no,
       sku_id,
       sku_name,
       IFNULL(bundle, '')                AS bundle,
       purchase_quantity,
       product_unit_price,
       product_total_amount,
       IFNULL(package_vinyl_spec_cd, '') AS package_vinyl_spec_cd,
       package_vinyl_spec_unit_price,
       package_vinyl_spec_total_amount,
       fail_yn,
       total_amount,
       purchase_order_number,
       purchase_tracking_number,
       purchase_pay_link,
       IFNULL(remark, '')                AS remark,
       del_yn
FROM ORDER_SHIPMENT_ESTIMATE_PRODUCT
WHERE order_shipment_estimate_no = ?
  AND del_yn = 0
ORDER BY order_shipment_estimate_product_no`

	QueryEstimateBoxes string = `SELECT order_shipment_estimate_box_no,
       order_shipment_estimate_no,
       company_no,
       center_no,
       package_box_spec_cd,
       package_box_spec_unit_price,
       box_quantity,
       total_amount,
       del_yn
FROM ORDER_SHIPMENT_ESTIMATE_BOX
WHERE order_shipment_estimate_no = ?
  AND del_yn = 0
ORDER BY order_shipment_estimate_box_no`

	QueryEstimateShipmentNos string = `SELECT DISTINCT order_shipment_mst_no
FROM ORDER_SHIPMENT_ESTIMATE_PRODUCT
WHERE order_shipment_estimate_no = ?
  AND order_shipment_mst_no IS NOT NULL
  AND del_yn = 0`

	UpdateEstimateDeposit string = `UPDATE ORDER_SHIPMENT_ESTIMATE
SET deposit_yn = 1,
    updated_at = NOW()
WHERE order_shipment_estimate_no = ?
  AND deposit_yn = 0
  AND del_yn = 0`

	UpdateShipmentStatus string = `UPDATE ORDER_SHIPMENT_MST
SET order_shipment_mst_status_cd = ?,
    updated_at                   = NOW()
WHERE order_shipment_mst_no IN (?)
  AND del_yn = 0`

	QueryOutstandingOrderNumbers string = `SELECT DISTINCT purchase_order_number
FROM ORDER_SHIPMENT_DTL
WHERE purchase_order_number IS NOT NULL
  AND purchase_order_number <> ''
  AND del_yn = 0`

	QueryOrderNumberCount string = `SELECT COUNT(*)
FROM ORDER_SHIPMENT_DTL
WHERE purchase_order_number = ?
  AND del_yn = 0`

	QueryEstimateAccountForOrder string = `SELECT IFNULL(ose.account_info_no_1688, 0)
FROM ORDER_SHIPMENT_ESTIMATE ose
         JOIN ORDER_SHIPMENT_ESTIMATE_PRODUCT osep
              ON osep.order_shipment_estimate_no = ose.order_shipment_estimate_no
WHERE osep.purchase_order_number = ?
  AND ose.del_yn = 0
  AND osep.del_yn = 0
LIMIT 1`

	UpdateDtlTracking string = `UPDATE ORDER_SHIPMENT_DTL
SET purchase_tracking_number = ?,
    delivery_status          = ?,
    updated_at               = NOW()
WHERE purchase_order_number = ?
  AND del_yn = 0`

	UpdateEstimateProductTracking string = `UPDATE ORDER_SHIPMENT_ESTIMATE_PRODUCT
SET purchase_tracking_number = ?,
    updated_at               = NOW()
WHERE purchase_order_number = ?
  AND del_yn = 0`

	QueryPackingBox string = `SELECT ospm.order_shipment_packing_mst_no,
       ospm.order_shipment_mst_no,
       ospm.company_no,
       IFNULL(ospm.box_name, '')            AS box_name,
       IFNULL(ospm.package_box_spec_cd, '') AS package_box_spec_cd,
       ospm.tracking_number,
       osm.center_no,
       osm.display_center_name,
       ospm.del_yn
FROM ORDER_SHIPMENT_PACKING_MST ospm
         JOIN ORDER_SHIPMENT_MST osm ON osm.order_shipment_mst_no = ospm.order_shipment_mst_no
WHERE ospm.order_shipment_packing_mst_no = ?
  AND ospm.del_yn = 0`

	UpdatePackingMstTracking string = `UPDATE ORDER_SHIPMENT_PACKING_MST
SET tracking_number = ?,
    updated_at      = NOW()
WHERE order_shipment_packing_mst_no = ?
  AND del_yn = 0`

	UpdatePackingDtlTracking string = `UPDATE ORDER_SHIPMENT_PACKING_DTL ospd
    JOIN ORDER_SHIPMENT_ESTIMATE_PRODUCT osep
    ON osep.order_shipment_dtl_no = ospd.order_shipment_dtl_no
        AND osep.fail_yn = 0
        AND osep.del_yn = 0
SET ospd.tracking_number = ?,
    ospd.updated_at      = NOW()
WHERE ospd.order_shipment_packing_mst_no = ?
  AND ospd.del_yn = 0`

	QueryKnownOrderNumbers string = `SELECT DISTINCT purchase_order_number
FROM ORDER_SHIPMENT_ESTIMATE_PRODUCT
WHERE purchase_order_number IN (?)
  AND del_yn = 0`

	UpdatePayURL string = `UPDATE ORDER_SHIPMENT_ESTIMATE_PRODUCT
SET purchase_pay_link = ?,
    updated_at        = NOW()
WHERE purchase_order_number IN (?)
  AND del_yn = 0`
)

package purchase

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"sellerhub.kr/fulfillment/procure/alibaba"
	"sellerhub.kr/fulfillment/procure/utils"
)

// Accounts is the 1688 account provider, set by the root command.
var Accounts alibaba.AccountProvider

type errorResponse struct {
	Error string `json:"error"`
}

// PlaceOrdersRequest selects line items for external order placement.
type PlaceOrdersRequest struct {
	ShipmentDtlNos []int  `json:"order_shipment_dtl_nos"`
	Message        string `json:"message"`
}

// PlaceOrders
// Place 1688 purchase orders for selected shipment line items
// @Summary      Place 1688 purchase orders
// @Description  group line items by seller and place one order per group
// @Tags         purchase
// @Accept       json
// @Produce      json
// @Param        request  body  PlaceOrdersRequest  true  "line item selection"
// @Success      200
// @Failure      400
// @Router       /orders/place [post]
func PlaceOrders(c echo.Context) error {
	var req PlaceOrdersRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := Orders.PlaceOrders(c.Request().Context(), req.ShipmentDtlNos, req.Message)
	if err != nil {
		return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// CreateEstimate
// @Summary      Create an estimate
// @Description  store product/box estimate lines with validated rollup totals
// @Tags         estimate
// @Accept       json
// @Produce      json
// @Param        request  body  CreateEstimateRequest  true  "estimate submission"
// @Success      200
// @Failure      400
// @Router       /estimates [post]
func CreateEstimate(c echo.Context) error {
	var req CreateEstimateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	estimateNo, err := Ledger.CreateEstimate(c.Request().Context(), req)
	if err != nil {
		return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int{"order_shipment_estimate_no": estimateNo})
}

// ConfirmDeposit
// @Summary      Confirm an estimate deposit
// @Description  flip deposit_yn and move all linked shipments to PAYMENT_COMPLETED
// @Tags         estimate
// @Produce      json
// @Param        estimateNo  path  int  true  "estimate number"
// @Success      200
// @Failure      400
// @Failure      404
// @Failure      409
// @Router       /estimates/{estimateNo}/deposit [post]
func ConfirmDeposit(c echo.Context) error {
	estimateNo, err := strconv.Atoi(c.Param("estimateNo"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "estimateNo must be an integer"})
	}

	if err := Ledger.ConfirmDeposit(c.Request().Context(), estimateNo); err != nil {
		return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": fmt.Sprintf("estimate %d deposit confirmed", estimateNo)})
}

// SyncTracking
// @Summary      Sync 1688 logistics status for all outstanding orders
// @Tags         tracking
// @Produce      json
// @Success      200
// @Router       /tracking/sync [post]
func SyncTracking(c echo.Context) error {
	result, err := Tracker.SyncAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": result.Message(),
		"result":  result,
	})
}

// SyncTrackingOne
// @Summary      Sync 1688 logistics status for one order number
// @Tags         tracking
// @Produce      json
// @Param        orderNumber  path  string  true  "1688 purchase order number"
// @Success      200
// @Failure      404
// @Router       /tracking/sync/{orderNumber} [post]
func SyncTrackingOne(c echo.Context) error {
	orderNumber := c.Param("orderNumber")
	if orderNumber == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "orderNumber must be provided"})
	}

	result, err := Tracker.SyncOne(c.Request().Context(), orderNumber)
	if err != nil {
		return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": result.Message(),
		"result":  result,
	})
}

// IssueTrackingRequest selects packing boxes for carrier issuance.
type IssueTrackingRequest struct {
	PackingMstNos []int `json:"order_shipment_packing_mst_nos"`
}

// IssueTracking
// @Summary      Issue CJ tracking numbers for packing boxes
// @Tags         packing
// @Accept       json
// @Produce      json
// @Param        request  body  IssueTrackingRequest  true  "box selection"
// @Success      200
// @Failure      400
// @Router       /packing/tracking [post]
func IssueTracking(c echo.Context) error {
	var req IssueTrackingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := Packer.Issue(c.Request().Context(), req.PackingMstNos)
	if err != nil {
		return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": result.Message(),
		"result":  result,
	})
}

// PaymentLinkRequest selects order numbers for consolidated payment.
type PaymentLinkRequest struct {
	OrderNumbers []string `json:"purchase_order_numbers"`
	AccountNo    int      `json:"account_info_no_1688"`
}

// CreatePaymentLink
// @Summary      Build a consolidated 1688 payment link
// @Description  one group-pay call for the batch; the link is stamped on all matching rows
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        request  body  PaymentLinkRequest  true  "order number batch"
// @Success      200
// @Failure      400
// @Router       /payment-links [post]
func CreatePaymentLink(c echo.Context) error {
	var req PaymentLinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := Payments.AggregateAndStamp(c.Request().Context(), req.OrderNumbers, req.AccountNo)
	if err != nil {
		return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// ReloadAccounts
// @Summary      Reload 1688 account credentials from DB
// @Tags         account
// @Produce      json
// @Success      200
// @Router       /accounts/reload [post]
func ReloadAccounts(c echo.Context) error {
	if err := Accounts.Reload(); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "1688 accounts reloaded"})
}

// DownloadEstimateExcel
// Download excel for an estimate
// @Summary      Download estimate excel
// @Description  get file by filename
// @Tags         estimate
// @Produce      json
// @Param        filename  path   string  true   "estimate filename"
// @Param        download  query  int     false  "Download file"
// @Success      200
// @Failure      400
// @Router       /estimate/{filename} [get]
func DownloadEstimateExcel(c echo.Context) error {
	tmpDir := viper.GetString("estimate.tmp.dir")
	if !utils.IsDir(tmpDir) {
		return c.String(http.StatusInternalServerError, fmt.Sprintf("The estimate root directory: %s is not exists.", tmpDir))
	}
	filename := c.Param("filename")
	if filename == "" {
		return c.String(http.StatusBadRequest, "The filename must be provided,but was empty.")
	}

	filePath, err := estimateFilePath(tmpDir, filename)
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("The filename:%s format not support.", filename))
	}

	if !utils.IsExists(filePath) {
		return c.String(http.StatusNotFound, fmt.Sprintf("The file:%s not found.", filename))
	}

	if "1" == c.QueryParam("download") {
		return c.Attachment(filePath, filename)
	}
	return c.File(filePath)
}

func estimateFilePath(rootDir string, filename string) (string, error) {
	fn := strings.Split(filename, ".")[0]
	paths := strings.Split(fn, "_")
	timestamp := paths[len(paths)-1]
	if timestamp == "" {
		return "", fmt.Errorf("the filename:%s cannot get timestamp", filename)
	}
	ftime, err := time.Parse(TimeLayout, timestamp)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d/%d/%s", rootDir, ftime.Year(), ftime.Month(), filename), nil
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyIssued), errors.Is(err, ErrAlreadyConfirmed):
		return http.StatusConflict
	case errors.Is(err, ErrMissingIntegrationLink),
		errors.Is(err, ErrNoValidOrders),
		errors.Is(err, ErrNoLinkedShipments),
		errors.Is(err, ErrEmptyInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

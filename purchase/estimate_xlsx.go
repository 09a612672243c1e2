package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"

	"sellerhub.kr/fulfillment/procure/rabbit"
	"sellerhub.kr/fulfillment/procure/utils"
)

const (
	TimeLayout         = "20060102150405"
	estimateSheetName  = "Estimate"
	estimateFirstRow   = 2
	amountDecimalPlace = 2
)

// RequestForEstimateFile is the MQ request to build an estimate workbook.
type RequestForEstimateFile struct {
	EstimateNo int `json:"estimate_no"`
}

// ResponseForEstimateFile is published after a workbook build attempt.
type ResponseForEstimateFile struct {
	Status     string `json:"status"`
	EstimateNo int    `json:"estimate_no"`
	Filename   string `json:"estimate_filename"`
	Error      string `json:"errors"`
}

// GenerateEstimateExcel handles one MQ request: build the estimate
// workbook and publish the result.
func GenerateEstimateExcel(data string) {
	response := &ResponseForEstimateFile{
		Status: "failed",
	}

	req, err := deserializeEstimateRequest(data)
	if err != nil {
		response.Error = fmt.Sprintf("Deserialization of MQ message failed, err:%v", err)
	} else {
		response.EstimateNo = req.EstimateNo
		filename, err := makeEstimateWorkbook(req.EstimateNo)
		if err != nil {
			log.Errorf("Generate estimate excel failed: %v", err)
			response.Error = fmt.Sprintf("Generate estimate excel failed,err:%v", err)
		} else {
			response.Status = "success"
			response.Filename = filename
		}
	}

	publishEstimateFileResult(response)
}

// deserializeEstimateRequest is used to deserialize a rabbitmq request,
// tolerating double-quoted payloads.
func deserializeEstimateRequest(message string) (RequestForEstimateFile, error) {
	log.Infof("Deserialize estimate file request: %v", message)

	req := RequestForEstimateFile{}
	msg, err := strconv.Unquote(message)
	if err != nil {
		err = json.Unmarshal([]byte(message), &req)
	} else {
		err = json.Unmarshal([]byte(msg), &req)
	}
	return req, err
}

func publishEstimateFileResult(res *ResponseForEstimateFile) {
	rbmq := &rabbit.Rabbit{
		Url:          viper.GetString("rabbitmq.url"),
		Exchange:     viper.GetString("rabbitmq.exchange"),
		ExchangeType: viper.GetString("rabbitmq.exchange-type"),
		Queue:        viper.GetString("rabbitmq.queue.estimate-res"),
	}
	log.Infof("Estimate file response: %v", res)

	marshal, err := json.Marshal(res)
	if err != nil {
		log.Errorf("Marshal struct to json failed: %v", err)
	} else {
		rabbit.Publish(rbmq, string(marshal))
	}
}

// makeEstimateWorkbook builds the workbook for one estimate and returns
// its file name.
func makeEstimateWorkbook(estimateNo int) (string, error) {
	ctx := context.Background()

	est, err := DefaultStore.GetEstimate(ctx, estimateNo)
	if err != nil {
		return "", err
	}
	products, err := DefaultStore.ListEstimateProducts(ctx, estimateNo)
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return "", errors.New("cant not query product rows for estimate")
	}
	boxes, err := DefaultStore.ListEstimateBoxes(ctx, estimateNo)
	if err != nil {
		return "", err
	}

	savePath, err := readyForEstimateFile(est.EstimateID)
	if err != nil {
		return "", err
	}

	if err := fillEstimateExcel(savePath, est, products, boxes); err != nil {
		return "", fmt.Errorf("fill estimate excel failed, err:%v", err)
	}
	return filepath.Base(savePath), nil
}

// readyForEstimateFile prepares the save path for an estimate workbook.
func readyForEstimateFile(estimateID string) (string, error) {
	tmpDir := viper.GetString("estimate.tmp.dir")
	if !utils.IsDir(tmpDir) && !utils.CreateDir(tmpDir) {
		return "", fmt.Errorf("crate tmp directory: %s failed", tmpDir)
	}

	now := time.Now()
	saveDir := filepath.Join(tmpDir, strconv.Itoa(now.Year()), strconv.Itoa(int(now.Month())))
	if !utils.IsDir(saveDir) && !utils.CreateDir(saveDir) {
		return "", fmt.Errorf("create save dir: %s failed", saveDir)
	}

	return filepath.Join(saveDir, fmt.Sprintf("ESTIMATE_%s_%s.xlsx", estimateID, now.Format(TimeLayout))), nil
}

var estimateBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

var estimateAlignment = &excelize.Alignment{
	Vertical:   "center",
	Horizontal: "center",
	WrapText:   true,
}

var estimateProductHeader = []string{
	"Center", "SKU ID", "SKU Name", "Bundle", "Qty",
	"Unit Price", "Product Amount", "Vinyl Spec", "Vinyl Amount", "Total", "Remark",
}

// fillEstimateExcel writes product lines, box lines and totals into a new
// workbook.
func fillEstimateExcel(savePath string, est *Estimate, products []EstimateProduct, boxes []EstimateBox) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("Close excel file failed: %v", err)
		}
	}()

	f.SetSheetName(f.GetSheetName(0), estimateSheetName)

	style, err := f.NewStyle(&excelize.Style{Border: estimateBorder, Alignment: estimateAlignment})
	styleAmount, err2 := f.NewStyle(&excelize.Style{Border: estimateBorder, Alignment: estimateAlignment, DecimalPlaces: amountDecimalPlace})
	if err != nil || err2 != nil {
		log.Errorf("Create excel style failed: %v %v", err, err2)
		return errors.New("create excel style failed")
	}

	for i, h := range estimateProductHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := addStringCell(f, cell, h, style); err != nil {
			return err
		}
	}

	rowNumber := estimateFirstRow
	for _, p := range products {
		remark := p.Remark
		if p.FailYn == 1 && remark == "" {
			remark = "estimate failed"
		}
		err = addStringCell(f, fmt.Sprintf("A%d", rowNumber), p.CenterNo, style)
		err = addStringCell(f, fmt.Sprintf("B%d", rowNumber), p.SkuID, style)
		err = addStringCell(f, fmt.Sprintf("C%d", rowNumber), p.SkuName, style)
		err = addStringCell(f, fmt.Sprintf("D%d", rowNumber), p.Bundle, style)
		err = addStringCell(f, fmt.Sprintf("E%d", rowNumber), strconv.Itoa(p.PurchaseQuantity), style)
		err = addFloatCell(f, fmt.Sprintf("F%d", rowNumber), p.ProductUnitPrice, styleAmount)
		err = addFloatCell(f, fmt.Sprintf("G%d", rowNumber), p.ProductTotalAmount, styleAmount)
		err = addStringCell(f, fmt.Sprintf("H%d", rowNumber), p.VinylSpecCd, style)
		err = addFloatCell(f, fmt.Sprintf("I%d", rowNumber), p.VinylTotalAmount, styleAmount)
		err = addFloatCell(f, fmt.Sprintf("J%d", rowNumber), p.TotalAmount, styleAmount)
		err = addStringCell(f, fmt.Sprintf("K%d", rowNumber), remark, style)
		if err != nil {
			return err
		}
		rowNumber++
	}

	rowNumber++
	err = addStringCell(f, fmt.Sprintf("A%d", rowNumber), "Box Spec", style)
	err = addStringCell(f, fmt.Sprintf("B%d", rowNumber), "Center", style)
	err = addStringCell(f, fmt.Sprintf("C%d", rowNumber), "Qty", style)
	err = addStringCell(f, fmt.Sprintf("D%d", rowNumber), "Unit Price", style)
	err = addStringCell(f, fmt.Sprintf("E%d", rowNumber), "Amount", style)
	if err != nil {
		return err
	}
	rowNumber++
	for _, b := range boxes {
		err = addStringCell(f, fmt.Sprintf("A%d", rowNumber), b.BoxSpecCd, style)
		err = addStringCell(f, fmt.Sprintf("B%d", rowNumber), b.CenterNo, style)
		err = addStringCell(f, fmt.Sprintf("C%d", rowNumber), strconv.Itoa(b.BoxQuantity), style)
		err = addFloatCell(f, fmt.Sprintf("D%d", rowNumber), b.BoxSpecUnitCost, styleAmount)
		err = addFloatCell(f, fmt.Sprintf("E%d", rowNumber), b.TotalAmount, styleAmount)
		if err != nil {
			return err
		}
		rowNumber++
	}

	rowNumber++
	err = addStringCell(f, fmt.Sprintf("A%d", rowNumber), "Product Total", style)
	err = addFloatCell(f, fmt.Sprintf("B%d", rowNumber), est.ProductTotalAmount, styleAmount)
	err = addStringCell(f, fmt.Sprintf("C%d", rowNumber), "Vinyl Total", style)
	err = addFloatCell(f, fmt.Sprintf("D%d", rowNumber), est.VinylTotalAmount, styleAmount)
	err = addStringCell(f, fmt.Sprintf("E%d", rowNumber), "Box Total", style)
	err = addFloatCell(f, fmt.Sprintf("F%d", rowNumber), est.BoxTotalAmount, styleAmount)
	err = addStringCell(f, fmt.Sprintf("G%d", rowNumber), "Grand Total", style)
	err = addFloatCell(f, fmt.Sprintf("H%d", rowNumber), est.EstimateTotal, styleAmount)
	if err != nil {
		return err
	}

	return f.SaveAs(savePath)
}

func addStringCell(f *excelize.File, cellName string, cellValue string, styleId int) error {
	err := f.SetCellStr(estimateSheetName, cellName, cellValue)
	err = f.SetCellStyle(estimateSheetName, cellName, cellName, styleId)
	if err != nil {
		return err
	}
	return nil
}

func addFloatCell(f *excelize.File, cellName string, cellValue float64, styleId int) error {
	err := f.SetCellFloat(estimateSheetName, cellName, cellValue, amountDecimalPlace, 64)
	err = f.SetCellStyle(estimateSheetName, cellName, cellName, styleId)
	if err != nil {
		return err
	}
	return nil
}

package purchase

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Db is the global database connection, set by the root command.
var Db *sqlx.DB

// SQLStore implements Store on the global MySQL connection.
type SQLStore struct {
	Db *sqlx.DB
}

func (s *SQLStore) ListOrderCandidates(ctx context.Context, dtlNos []int) ([]OrderCandidate, error) {
	query, args, err := sqlx.In(QueryOrderCandidates, dtlNos)
	if err != nil {
		return nil, err
	}
	var candidates []OrderCandidate
	if err := s.Db.SelectContext(ctx, &candidates, s.Db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *SQLStore) StampOrderNumber(ctx context.Context, orderNumber string, dtlNos []int) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := sqlx.In(UpdateEstimateProductOrderNumber, orderNumber, dtlNos)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return err
		}

		query, args, err = sqlx.In(UpdateDtlOrderNumber, orderNumber, dtlNos)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(query), args...)
		return err
	})
}

func (s *SQLStore) CreateEstimate(ctx context.Context, est *Estimate, products []EstimateProduct, boxes []EstimateBox, shipmentMstNos []int) (int, error) {
	var estimateNo int64
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, InsertEstimate,
			est.OrderMstNo, est.CompanyNo, est.EstimateID, est.EstimateDate,
			est.ProductTotalAmount, est.VinylTotalAmount, est.BoxTotalAmount,
			est.EstimateTotal, est.AccountNo1688, est.CreatedBy)
		if err != nil {
			return err
		}
		estimateNo, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, p := range products {
			_, err = tx.ExecContext(ctx, InsertEstimateProduct,
				estimateNo, p.ShipmentMstNo, p.ShipmentDtlNo, p.CompanyNo, p.CenterNo,
				p.SkuID, p.SkuName, p.Bundle, p.PurchaseQuantity,
				p.ProductUnitPrice, p.ProductTotalAmount,
				p.VinylSpecCd, p.VinylUnitPrice, p.VinylTotalAmount,
				p.FailYn, p.TotalAmount, p.Remark, est.CreatedBy)
			if err != nil {
				return err
			}
		}

		for _, b := range boxes {
			_, err = tx.ExecContext(ctx, InsertEstimateBox,
				estimateNo, b.CompanyNo, b.CenterNo, b.BoxSpecCd,
				b.BoxSpecUnitCost, b.BoxQuantity, b.TotalAmount, est.CreatedBy)
			if err != nil {
				return err
			}
		}

		if len(shipmentMstNos) > 0 {
			query, args, err := sqlx.In(UpdateShipmentEstimated, shipmentMstNos)
			if err != nil {
				return err
			}
			if _, err = tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return err
			}
		}
		return nil
	})
	return int(estimateNo), err
}

func (s *SQLStore) GetEstimate(ctx context.Context, estimateNo int) (*Estimate, error) {
	var est Estimate
	err := s.Db.GetContext(ctx, &est, QueryEstimate, estimateNo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &est, nil
}

func (s *SQLStore) ListEstimateProducts(ctx context.Context, estimateNo int) ([]EstimateProduct, error) {
	var products []EstimateProduct
	if err := s.Db.SelectContext(ctx, &products, QueryEstimateProducts, estimateNo); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *SQLStore) ListEstimateBoxes(ctx context.Context, estimateNo int) ([]EstimateBox, error) {
	var boxes []EstimateBox
	if err := s.Db.SelectContext(ctx, &boxes, QueryEstimateBoxes, estimateNo); err != nil {
		return nil, err
	}
	return boxes, nil
}

func (s *SQLStore) ListEstimateShipmentNos(ctx context.Context, estimateNo int) ([]int, error) {
	var nos []int
	if err := s.Db.SelectContext(ctx, &nos, QueryEstimateShipmentNos, estimateNo); err != nil {
		return nil, err
	}
	return nos, nil
}

func (s *SQLStore) ConfirmDeposit(ctx context.Context, estimateNo int, shipmentMstNos []int) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, UpdateEstimateDeposit, estimateNo)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAlreadyConfirmed
		}

		query, args, err := sqlx.In(UpdateShipmentStatus, StatusPaymentCompleted, shipmentMstNos)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(query), args...)
		return err
	})
}

func (s *SQLStore) ListOutstandingOrderNumbers(ctx context.Context) ([]string, error) {
	var orderNumbers []string
	if err := s.Db.SelectContext(ctx, &orderNumbers, QueryOutstandingOrderNumbers); err != nil {
		return nil, err
	}
	return orderNumbers, nil
}

func (s *SQLStore) OrderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	var count int
	if err := s.Db.GetContext(ctx, &count, QueryOrderNumberCount, orderNumber); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLStore) EstimateAccountForOrder(ctx context.Context, orderNumber string) (int, error) {
	var accountNo int
	err := s.Db.GetContext(ctx, &accountNo, QueryEstimateAccountForOrder, orderNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return accountNo, nil
}

func (s *SQLStore) ApplyTrackingUpdates(ctx context.Context, updates []TrackingUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, u := range updates {
			if _, err := tx.ExecContext(ctx, UpdateDtlTracking, u.TrackingNumber, u.DeliveryStatus, u.OrderNumber); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, UpdateEstimateProductTracking, u.TrackingNumber, u.OrderNumber); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) GetPackingBox(ctx context.Context, boxNo int) (*PackingMst, error) {
	var box PackingMst
	err := s.Db.GetContext(ctx, &box, QueryPackingBox, boxNo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &box, nil
}

func (s *SQLStore) StampBoxTracking(ctx context.Context, boxNo int, trackingNumber string) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, UpdatePackingMstTracking, trackingNumber, boxNo); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, UpdatePackingDtlTracking, trackingNumber, boxNo)
		return err
	})
}

func (s *SQLStore) FilterKnownOrderNumbers(ctx context.Context, orderNumbers []string) ([]string, error) {
	query, args, err := sqlx.In(QueryKnownOrderNumbers, orderNumbers)
	if err != nil {
		return nil, err
	}
	var known []string
	if err := s.Db.SelectContext(ctx, &known, s.Db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return known, nil
}

func (s *SQLStore) StampPayURL(ctx context.Context, orderNumbers []string, payURL string) (int64, error) {
	query, args, err := sqlx.In(UpdatePayURL, payURL, orderNumbers)
	if err != nil {
		return 0, err
	}
	res, err := s.Db.ExecContext(ctx, s.Db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.Db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

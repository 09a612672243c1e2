package purchase

import (
	"fmt"
	"regexp"
	"sort"
)

// CargoLine is one (offer, spec) variant with its summed quantity inside a
// seller group.
type CargoLine struct {
	OfferID  string
	SpecID   string
	Quantity int
}

// SellerGroup is the set of line items purchasable from one upstream
// seller with one external order. DtlNos is sorted ascending, so DtlNos[0]
// is the lowest line-item number in the group.
type SellerGroup struct {
	OpenUID string
	Cargo   []CargoLine
	DtlNos  []int
}

// OutOrderID derives the external correlation id for the group: the seller
// identity prefix plus the lowest line-item number. Repeated attempts
// against the same group produce the same id.
func (g *SellerGroup) OutOrderID() string {
	return fmt.Sprintf("%.8s-%d", g.OpenUID, g.DtlNos[0])
}

var offerIDPattern = regexp.MustCompile(`/offer/(\d+)\.html`)

// ExtractOfferID pulls the offer id out of a 1688 product link. Empty when
// the link does not carry one.
func ExtractOfferID(link string) string {
	m := offerIDPattern.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

// GroupBySeller partitions candidates by seller identity, summing the
// quantities of identical (offer, spec) pairs. Any candidate without a
// resolvable seller identity, offer id or spec id fails the whole batch.
// Output ordering is stable: groups sorted by seller identity, cargo by
// (offer, spec), line-item numbers ascending.
func GroupBySeller(candidates []OrderCandidate) ([]SellerGroup, error) {
	type cargoKey struct {
		offerID string
		specID  string
	}

	groups := make(map[string]map[cargoKey]int)
	dtlNos := make(map[string]map[int]bool)

	for _, c := range candidates {
		offerID := ExtractOfferID(c.Link)
		if c.OpenUID == "" || offerID == "" || c.SpecID == "" {
			return nil, fmt.Errorf("%w: sku %s (dtl %d)", ErrMissingIntegrationLink, c.SkuID, c.ShipmentDtlNo)
		}

		if groups[c.OpenUID] == nil {
			groups[c.OpenUID] = make(map[cargoKey]int)
			dtlNos[c.OpenUID] = make(map[int]bool)
		}
		groups[c.OpenUID][cargoKey{offerID, c.SpecID}] += c.Quantity
		dtlNos[c.OpenUID][c.ShipmentDtlNo] = true
	}

	uids := make([]string, 0, len(groups))
	for uid := range groups {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	result := make([]SellerGroup, 0, len(uids))
	for _, uid := range uids {
		cargo := make([]CargoLine, 0, len(groups[uid]))
		for key, qty := range groups[uid] {
			cargo = append(cargo, CargoLine{OfferID: key.offerID, SpecID: key.specID, Quantity: qty})
		}
		sort.Slice(cargo, func(i, j int) bool {
			if cargo[i].OfferID != cargo[j].OfferID {
				return cargo[i].OfferID < cargo[j].OfferID
			}
			return cargo[i].SpecID < cargo[j].SpecID
		})

		nos := make([]int, 0, len(dtlNos[uid]))
		for no := range dtlNos[uid] {
			nos = append(nos, no)
		}
		sort.Ints(nos)

		result = append(result, SellerGroup{OpenUID: uid, Cargo: cargo, DtlNos: nos})
	}
	return result, nil
}

package handlers

import (
	"fmt"
	"time"

	"kvltransport/models"
)

// In-memory repositories for handler tests. They mirror the store
// semantics: reads return nil when nothing matches, soft-deleted documents
// are invisible, and the active counts are computed fresh.

type fakeConsignmentRepo struct {
	items map[string]*models.Consignment
}

func newFakeConsignmentRepo() *fakeConsignmentRepo {
	return &fakeConsignmentRepo{items: make(map[string]*models.Consignment)}
}

func (r *fakeConsignmentRepo) Create(c *models.Consignment) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeConsignmentRepo) GetByID(id string) (*models.Consignment, error) {
	c, ok := r.items[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConsignmentRepo) GetByNumber(number string) (*models.Consignment, error) {
	for _, c := range r.items {
		if c.ConsignmentNumber == number && !c.IsDeleted {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeConsignmentRepo) List(filters map[string]interface{}) ([]*models.Consignment, error) {
	var out []*models.Consignment
	for _, c := range r.items {
		if c.IsDeleted {
			continue
		}
		if status, ok := filters["status"]; ok && string(c.Status) != status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeConsignmentRepo) Update(c *models.Consignment) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeConsignmentRepo) SoftDelete(id, deletedBy string) error {
	if c, ok := r.items[id]; ok {
		now := time.Now()
		c.IsDeleted = true
		c.DeletedAt = &now
		c.DeletedBy = deletedBy
	}
	return nil
}

func (r *fakeConsignmentRepo) CountActiveForVehicle(vehicleID, excludeConsignmentID string) (int64, error) {
	var n int64
	for _, c := range r.items {
		if c.IsDeleted || c.ID == excludeConsignmentID || c.Vehicle == nil || c.Vehicle.VehicleID != vehicleID {
			continue
		}
		if isActiveStatus(c.Status) {
			n++
		}
	}
	return n, nil
}

func (r *fakeConsignmentRepo) CountActiveForDriver(driverID, excludeConsignmentID string) (int64, error) {
	var n int64
	for _, c := range r.items {
		if c.IsDeleted || c.ID == excludeConsignmentID || c.Driver == nil || c.Driver.DriverID != driverID {
			continue
		}
		if isActiveStatus(c.Status) {
			n++
		}
	}
	return n, nil
}

func (r *fakeConsignmentRepo) FindDeliveredForParty(ids []string, customerID, name, mobile string) ([]*models.Consignment, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*models.Consignment
	for _, c := range r.items {
		if !wanted[c.ID] || c.IsDeleted || c.Status != models.StatusDelivered {
			continue
		}
		if !partyMatches(c.Consignor, customerID, name, mobile) &&
			!partyMatches(c.Consignee, customerID, name, mobile) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func partyMatches(p models.Party, customerID, name, mobile string) bool {
	if customerID != "" && p.CustomerID == customerID {
		return true
	}
	return name != "" && mobile != "" && p.Name == name && p.Mobile == mobile
}

func isActiveStatus(s models.ConsignmentStatus) bool {
	for _, active := range models.ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

type fakeVehicleRepo struct {
	items map[string]*models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{items: make(map[string]*models.Vehicle)}
}

func (r *fakeVehicleRepo) Create(v *models.Vehicle) error {
	cp := *v
	r.items[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	v, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByNumber(number string) (*models.Vehicle, error) {
	for _, v := range r.items {
		if v.VehicleNumber == number {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVehicleRepo) List() ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for _, v := range r.items {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeVehicleRepo) Update(v *models.Vehicle) error {
	cp := *v
	r.items[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) SetStatus(id string, status models.VehicleStatus) error {
	if v, ok := r.items[id]; ok {
		v.Status = status
	}
	return nil
}

type fakeDriverRepo struct {
	items map[string]*models.Driver
}

func newFakeDriverRepo() *fakeDriverRepo {
	return &fakeDriverRepo{items: make(map[string]*models.Driver)}
}

func (r *fakeDriverRepo) Create(d *models.Driver) error {
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDriverRepo) GetByID(id string) (*models.Driver, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDriverRepo) GetByMobile(mobile string) (*models.Driver, error) {
	for _, d := range r.items {
		if d.Mobile == mobile {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDriverRepo) List() ([]*models.Driver, error) {
	var out []*models.Driver
	for _, d := range r.items {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDriverRepo) Update(d *models.Driver) error {
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDriverRepo) SetStatus(id string, status models.DriverStatus, currentVehicle *string) error {
	if d, ok := r.items[id]; ok {
		d.Status = status
		d.CurrentVehicle = currentVehicle
	}
	return nil
}

type fakeCustomerRepo struct {
	items map[string]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{items: make(map[string]*models.Customer)}
}

func (r *fakeCustomerRepo) Create(c *models.Customer) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*models.Customer, error) {
	c, ok := r.items[id]
	if !ok || c.IsDeleted {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List() ([]*models.Customer, error) {
	var out []*models.Customer
	for _, c := range r.items {
		if c.IsDeleted {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *models.Customer) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) SoftDelete(id string) error {
	if c, ok := r.items[id]; ok {
		now := time.Now()
		c.IsDeleted = true
		c.DeletedAt = &now
	}
	return nil
}

type fakeSequenceRepo struct {
	counters map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: make(map[string]int64)}
}

func (r *fakeSequenceRepo) Next(name string, year int) (int64, error) {
	key := fmt.Sprintf("%s_%d", name, year)
	r.counters[key]++
	return r.counters[key], nil
}

type fakeUserRepo struct {
	items map[string]*models.AppUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: make(map[string]*models.AppUser)}
}

func (r *fakeUserRepo) CreateUser(u *models.AppUser) error {
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.AppUser, error) {
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeChalanRepo struct {
	items map[string]*models.LoadChalan
}

func newFakeChalanRepo() *fakeChalanRepo {
	return &fakeChalanRepo{items: make(map[string]*models.LoadChalan)}
}

func (r *fakeChalanRepo) Create(ch *models.LoadChalan) error {
	ch.RecalculateTotals()
	cp := *ch
	r.items[ch.ID] = &cp
	return nil
}

func (r *fakeChalanRepo) GetByID(id string) (*models.LoadChalan, error) {
	ch, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *ch
	return &cp, nil
}

func (r *fakeChalanRepo) GetByNumber(number string) (*models.LoadChalan, error) {
	for _, ch := range r.items {
		if ch.ChalanNumber == number {
			cp := *ch
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeChalanRepo) List(filters map[string]interface{}) ([]*models.LoadChalan, error) {
	var out []*models.LoadChalan
	for _, ch := range r.items {
		if status, ok := filters["status"]; ok && string(ch.Status) != status {
			continue
		}
		cp := *ch
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeChalanRepo) Update(ch *models.LoadChalan) error {
	ch.RecalculateTotals()
	cp := *ch
	r.items[ch.ID] = &cp
	return nil
}

func (r *fakeChalanRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

// fakeBillRepo couples to the consignment store the way the real backends
// do inside their transactions.
type fakeBillRepo struct {
	bills        map[string]*models.FreightBill
	consignments *fakeConsignmentRepo
}

func newFakeBillRepo(cons *fakeConsignmentRepo) *fakeBillRepo {
	return &fakeBillRepo{bills: make(map[string]*models.FreightBill), consignments: cons}
}

func (r *fakeBillRepo) CreateWithConsignments(bill *models.FreightBill) error {
	cp := *bill
	r.bills[bill.ID] = &cp
	now := time.Now()
	for _, line := range bill.Consignments {
		if c, ok := r.consignments.items[line.ConsignmentID]; ok {
			billedIn := bill.ID
			c.BilledIn = &billedIn
			c.BilledDate = &now
			c.PaymentStatus = models.PaymentStatusBilled
		}
	}
	return nil
}

func (r *fakeBillRepo) GetByID(id string) (*models.FreightBill, error) {
	b, ok := r.bills[id]
	if !ok || b.IsDeleted {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBillRepo) List(filters map[string]interface{}) ([]*models.FreightBill, error) {
	var out []*models.FreightBill
	for _, b := range r.bills {
		if b.IsDeleted {
			continue
		}
		if status, ok := filters["status"]; ok && string(b.Status) != status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBillRepo) Update(bill *models.FreightBill) error {
	cp := *bill
	r.bills[bill.ID] = &cp
	return nil
}

func (r *fakeBillRepo) BilledConsignmentIDs(ids []string) ([]string, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []string
	for _, b := range r.bills {
		if b.IsDeleted {
			continue
		}
		for _, line := range b.Consignments {
			if wanted[line.ConsignmentID] {
				out = append(out, line.ConsignmentID)
			}
		}
	}
	return out, nil
}

func (r *fakeBillRepo) SetConsignmentsPaymentStatus(ids []string, status string) error {
	for _, id := range ids {
		if c, ok := r.consignments.items[id]; ok {
			c.PaymentStatus = status
		}
	}
	return nil
}

func (r *fakeBillRepo) DeleteWithRollback(bill *models.FreightBill) error {
	if b, ok := r.bills[bill.ID]; ok {
		now := time.Now()
		b.IsDeleted = true
		b.DeletedAt = &now
	}
	for _, line := range bill.Consignments {
		if c, ok := r.consignments.items[line.ConsignmentID]; ok {
			c.BilledIn = nil
			c.BilledDate = nil
			c.PaymentStatus = models.PaymentStatusUnbilled
		}
	}
	return nil
}

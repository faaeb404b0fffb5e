package services

import (
	"context"
	"sync"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/internal/utils"
	"transandino/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger() *logger.Logger {
	l, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
	if err != nil {
		panic(err)
	}
	return l
}

func samePtr(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// --- driver fake ---

type fakeDriverRepo struct {
	mu      sync.Mutex
	drivers map[primitive.ObjectID]*models.Driver
}

func newFakeDriverRepo() *fakeDriverRepo {
	return &fakeDriverRepo{drivers: make(map[primitive.ObjectID]*models.Driver)}
}

func (r *fakeDriverRepo) put(d *models.Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.drivers[d.ID] = &cp
}

func (r *fakeDriverRepo) Create(ctx context.Context, driver *models.Driver) error {
	r.put(driver)
	return nil
}

func (r *fakeDriverRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDriverRepo) GetByRUT(ctx context.Context, rut string) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drivers {
		if d.RUT == rut {
			cp := *d
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeDriverRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if status, ok := updates["status"].(models.DriverStatus); ok {
		d.Status = status
	}
	return nil
}

func (r *fakeDriverRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drivers[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.drivers, id)
	return nil
}

func (r *fakeDriverRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Driver
	for _, d := range r.drivers {
		cp := *d
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeDriverRepo) GetByStatus(ctx context.Context, status models.DriverStatus, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Driver
	for _, d := range r.drivers {
		if d.Status == status {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeDriverRepo) SetCurrentVehicle(ctx context.Context, driverID primitive.ObjectID, vehicleID *primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[driverID]
	if !ok {
		return interfaces.ErrNotFound
	}
	d.CurrentVehicleID = vehicleID
	return nil
}

// --- vehicle fake ---

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]*models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
}

func (r *fakeVehicleRepo) put(v *models.Vehicle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.vehicles[v.ID] = &cp
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.put(vehicle)
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.Plate == plate {
			cp := *v
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeVehicleRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if status, ok := updates["status"].(models.VehicleStatus); ok {
		v.Status = status
	}
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Vehicle
	for _, v := range r.vehicles {
		cp := *v
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) GetByStatus(ctx context.Context, status models.VehicleStatus, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Vehicle
	for _, v := range r.vehicles {
		if v.Status == status {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) GetByDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.DriverID != nil && *v.DriverID == driverID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeVehicleRepo) GetBySemitrailer(ctx context.Context, semitrailerID primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.SemitrailerID != nil && *v.SemitrailerID == semitrailerID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeVehicleRepo) SetDriver(ctx context.Context, vehicleID primitive.ObjectID, driverID, expected *primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[vehicleID]
	if !ok {
		return interfaces.ErrNotFound
	}
	if !samePtr(v.DriverID, expected) {
		return interfaces.ErrConflict
	}
	if driverID != nil {
		for id, other := range r.vehicles {
			if id != vehicleID && other.DriverID != nil && *other.DriverID == *driverID {
				return interfaces.ErrDuplicate
			}
		}
	}
	v.DriverID = driverID
	return nil
}

func (r *fakeVehicleRepo) SetSemitrailer(ctx context.Context, vehicleID primitive.ObjectID, semitrailerID, expected *primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[vehicleID]
	if !ok {
		return interfaces.ErrNotFound
	}
	if !samePtr(v.SemitrailerID, expected) {
		return interfaces.ErrConflict
	}
	if semitrailerID != nil {
		for id, other := range r.vehicles {
			if id != vehicleID && other.SemitrailerID != nil && *other.SemitrailerID == *semitrailerID {
				return interfaces.ErrDuplicate
			}
		}
	}
	v.SemitrailerID = semitrailerID
	return nil
}

// --- semitrailer fake ---

type fakeSemitrailerRepo struct {
	mu           sync.Mutex
	semitrailers map[primitive.ObjectID]*models.Semitrailer
}

func newFakeSemitrailerRepo() *fakeSemitrailerRepo {
	return &fakeSemitrailerRepo{semitrailers: make(map[primitive.ObjectID]*models.Semitrailer)}
}

func (r *fakeSemitrailerRepo) put(s *models.Semitrailer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.semitrailers[s.ID] = &cp
}

func (r *fakeSemitrailerRepo) Create(ctx context.Context, semitrailer *models.Semitrailer) error {
	r.put(semitrailer)
	return nil
}

func (r *fakeSemitrailerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Semitrailer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.semitrailers[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSemitrailerRepo) GetByPlate(ctx context.Context, plate string) (*models.Semitrailer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.semitrailers {
		if s.Plate == plate {
			cp := *s
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeSemitrailerRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeSemitrailerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.semitrailers, id)
	return nil
}

func (r *fakeSemitrailerRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Semitrailer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Semitrailer
	for _, s := range r.semitrailers {
		cp := *s
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSemitrailerRepo) GetByStatus(ctx context.Context, status models.SemitrailerStatus, params *utils.PaginationParams) ([]*models.Semitrailer, int64, error) {
	return r.List(ctx, params)
}

func (r *fakeSemitrailerRepo) SetAssignedVehicle(ctx context.Context, semitrailerID primitive.ObjectID, vehicleID *primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.semitrailers[semitrailerID]
	if !ok {
		return interfaces.ErrNotFound
	}
	s.AssignedVehicleID = vehicleID
	return nil
}

// --- trip fake ---

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[primitive.ObjectID]*models.Trip

	// replaceHook runs inside Replace before the version check, letting
	// tests interleave a competing write.
	replaceHook func()
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[primitive.ObjectID]*models.Trip)}
}

func copyTrip(t *models.Trip) *models.Trip {
	cp := *t
	cp.Stages = append([]models.Stage(nil), t.Stages...)
	cp.Incidents = append([]models.Incident(nil), t.Incidents...)
	return &cp
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[trip.ID] = copyTrip(trip)
	return nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return copyTrip(t), nil
}

func (r *fakeTripRepo) GetByFolio(ctx context.Context, folio string) (*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.trips {
		if t.Folio == folio {
			return copyTrip(t), nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeTripRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.trips, id)
	return nil
}

func (r *fakeTripRepo) Replace(ctx context.Context, trip *models.Trip) error {
	if r.replaceHook != nil {
		hook := r.replaceHook
		r.replaceHook = nil
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.trips[trip.ID]
	if !ok {
		return interfaces.ErrNotFound
	}
	if stored.Version != trip.Version {
		return interfaces.ErrConflict
	}
	trip.Version++
	r.trips[trip.ID] = copyTrip(trip)
	return nil
}

func (r *fakeTripRepo) List(ctx context.Context, filter *interfaces.TripFilter, params *utils.PaginationParams) ([]*models.Trip, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Trip
	for _, t := range r.trips {
		out = append(out, copyTrip(t))
	}
	return out, int64(len(out)), nil
}

func (r *fakeTripRepo) CountActiveByDriver(ctx context.Context, driverID primitive.ObjectID, exclude *primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.trips {
		if t.IsTerminal() {
			continue
		}
		if exclude != nil && t.ID == *exclude {
			continue
		}
		if t.DriverID != nil && *t.DriverID == driverID {
			n++
		}
	}
	return n, nil
}

func (r *fakeTripRepo) CountActiveByVehicle(ctx context.Context, vehicleID primitive.ObjectID, exclude *primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.trips {
		if t.IsTerminal() {
			continue
		}
		if exclude != nil && t.ID == *exclude {
			continue
		}
		if t.VehicleID != nil && *t.VehicleID == vehicleID {
			n++
		}
	}
	return n, nil
}

// --- location fake ---

type fakeLocationRepo struct {
	mu        sync.Mutex
	locations map[primitive.ObjectID]*models.Location
	upsertErr error
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[primitive.ObjectID]*models.Location)}
}

func (r *fakeLocationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locations[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLocationRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Location, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Location
	for _, l := range r.locations {
		cp := *l
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLocationRepo) Upsert(ctx context.Context, location *models.Location) (*models.Location, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		if l.Name == location.Name && l.City == location.City && l.Country == location.Country {
			cp := *l
			return &cp, nil
		}
	}
	cp := *location
	cp.ID = primitive.NewObjectID()
	r.locations[cp.ID] = &cp
	out := cp
	return &out, nil
}

// --- audit fake ---

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*models.AuditLog
}

func newFakeAuditRepo() *fakeAuditRepo { return &fakeAuditRepo{} }

func (r *fakeAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.AuditLog
	for _, e := range r.entries {
		if resource != "" && e.Resource != resource {
			continue
		}
		if resourceID != "" && e.ResourceID != resourceID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAuditRepo) actions() []models.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AuditAction
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

// --- engine fixture ---

type engineFixture struct {
	driverRepo      *fakeDriverRepo
	vehicleRepo     *fakeVehicleRepo
	semitrailerRepo *fakeSemitrailerRepo
	tripRepo        *fakeTripRepo
	locationRepo    *fakeLocationRepo
	auditRepo       *fakeAuditRepo

	assignment AssignmentService
	trips      TripService
	fleet      FleetService
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		driverRepo:      newFakeDriverRepo(),
		vehicleRepo:     newFakeVehicleRepo(),
		semitrailerRepo: newFakeSemitrailerRepo(),
		tripRepo:        newFakeTripRepo(),
		locationRepo:    newFakeLocationRepo(),
		auditRepo:       newFakeAuditRepo(),
	}

	log := newTestLogger()
	audit := NewAuditService(f.auditRepo, log)
	f.assignment = NewAssignmentService(f.driverRepo, f.vehicleRepo, f.semitrailerRepo, f.tripRepo, audit, log)
	templates := NewStageTemplateService(f.locationRepo)
	f.trips = NewTripService(f.tripRepo, templates, f.assignment, audit, log)
	f.fleet = NewFleetService(f.driverRepo, f.vehicleRepo, f.semitrailerRepo, f.assignment, log)

	return f
}

func (f *engineFixture) addDriver(status models.DriverStatus) *models.Driver {
	d := &models.Driver{
		ID:            primitive.NewObjectID(),
		FirstName:     "Juan",
		LastName:      "Pérez",
		RUT:           "12.345.678-5",
		LicenseNumber: "A-123",
		Status:        status,
	}
	f.driverRepo.put(d)
	return d
}

func (f *engineFixture) addVehicle() *models.Vehicle {
	v := &models.Vehicle{
		ID:     primitive.NewObjectID(),
		Plate:  "ABCD12",
		Make:   "Volvo",
		Model:  "FH",
		Status: models.VehicleStatusActivo,
	}
	f.vehicleRepo.put(v)
	return v
}

func (f *engineFixture) addSemitrailer() *models.Semitrailer {
	s := &models.Semitrailer{
		ID:     primitive.NewObjectID(),
		Plate:  "JKLM34",
		Status: models.SemitrailerStatusActivo,
	}
	f.semitrailerRepo.put(s)
	return s
}

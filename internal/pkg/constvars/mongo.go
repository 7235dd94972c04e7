package constvars

const (
	MongoCollectionDoctors      = "doctors"
	MongoCollectionUsers        = "users"
	MongoCollectionAppointments = "appointments"
)

const (
	MongoFieldID          = "_id"
	MongoFieldSlotIndex   = "slotIndex"
	MongoFieldSlotVersion = "slotVersion"
	MongoFieldUserID      = "userId"
	MongoFieldDocID       = "docId"
	MongoFieldSlotDate    = "slotDate"
	MongoFieldSlotTime    = "slotTime"
	MongoFieldBookedAt    = "bookedAt"
	MongoFieldState       = "state"
	MongoFieldUpdatedAt   = "updatedAt"
	MongoFieldPayment     = "payment"
)

package domain

// StoreProfile identifies the owner and their store. Singleton, set at login.
type StoreProfile struct {
	OwnerName string `json:"ownerName"`
	StoreName string `json:"storeName"`
}

// DefaultStoreProfile is returned when no profile has been saved yet.
func DefaultStoreProfile() StoreProfile {
	return StoreProfile{OwnerName: "Owner", StoreName: "My UMKM"}
}

package dto

type CreateGroupRequest struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Location    string `json:"location" yaml:"location"`
	MaxMembers  int    `json:"maxMembers" yaml:"maxMembers"`
	ExpiryDate  string `json:"expiryDate" yaml:"expiryDate"`
	ExpiryTime  string `json:"expiryTime" yaml:"expiryTime"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Deadline    string `json:"deadline" yaml:"deadline"`
	Reward      string `json:"reward" yaml:"reward"`
}

type AcceptApplicantRequest struct {
	ApplicantID string `json:"applicantId"`
}

type DepositRequest struct {
	Amount           int64  `json:"amount"`
	UTRNumber        string `json:"utrNumber"`
	ConfirmUTRNumber string `json:"confirmUtrNumber"`
}

type WithdrawalRequest struct {
	Amount int64  `json:"amount"`
	UPIID  string `json:"upiId"`
}

type ReviewRequest struct {
	Reason string `json:"reason"`
}

// UpdateProfileRequest uses pointers so omitted fields stay untouched.
type UpdateProfileRequest struct {
	Bio             *string  `json:"bio"`
	Occupation      *string  `json:"occupation"`
	Location        *string  `json:"location"`
	PhoneNumber     *string  `json:"phoneNumber"`
	InstagramID     *string  `json:"instagramId"`
	Website         *string  `json:"website"`
	OfferedServices []string `json:"offeredServices"`
}

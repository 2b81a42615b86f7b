package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type RoleID string

func NewRoleID(id string) RoleID { return RoleID(id) }
func (r RoleID) String() string  { return string(r) }
func (r RoleID) IsEmpty() bool   { return string(r) == "" }

type CompanyID string

func NewCompanyID(id string) CompanyID { return CompanyID(id) }
func (c CompanyID) String() string     { return string(c) }
func (c CompanyID) IsEmpty() bool      { return string(c) == "" }

type ClientID string

func NewClientID(id string) ClientID { return ClientID(id) }
func (c ClientID) String() string    { return string(c) }
func (c ClientID) IsEmpty() bool     { return string(c) == "" }

type FranchiseID string

func NewFranchiseID(id string) FranchiseID { return FranchiseID(id) }
func (f FranchiseID) String() string       { return string(f) }
func (f FranchiseID) IsEmpty() bool        { return string(f) == "" }

type CampaignID string

func NewCampaignID(id string) CampaignID { return CampaignID(id) }
func (c CampaignID) String() string      { return string(c) }
func (c CampaignID) IsEmpty() bool       { return string(c) == "" }

type SessionID string

func NewSessionID(id string) SessionID { return SessionID(id) }
func (s SessionID) String() string     { return string(s) }
func (s SessionID) IsEmpty() bool      { return string(s) == "" }

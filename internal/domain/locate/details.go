package locate

// Details holds the descriptive fields copied verbatim from the dispatch
// board. Scraper adapters produce records of this shape.
type Details struct {
	WorkOrderNumber     string `json:"workOrderNumber" yaml:"workOrderNumber"`
	PriorityColor       string `json:"priorityColor" yaml:"priorityColor"`
	PriorityName        string `json:"priorityName" yaml:"priorityName"`
	CustomerPO          string `json:"customerPO" yaml:"customerPO"`
	CustomerName        string `json:"customerName" yaml:"customerName"`
	CustomerAddress     string `json:"customerAddress" yaml:"customerAddress"`
	Tags                string `json:"tags" yaml:"tags"`
	TechName            string `json:"techName" yaml:"techName"`
	PromisedAppointment string `json:"promisedAppointment" yaml:"promisedAppointment"`
	CreatedDate         string `json:"createdDate" yaml:"createdDate"`
	RequestedDate       string `json:"requestedDate" yaml:"requestedDate"`
	CompletedDate       string `json:"completedDate" yaml:"completedDate"`
	Task                string `json:"task" yaml:"task"`
	TaskDuration        string `json:"taskDuration" yaml:"taskDuration"`
	PurchaseStatus      string `json:"purchaseStatus" yaml:"purchaseStatus"`
	PurchaseStatusName  string `json:"purchaseStatusName" yaml:"purchaseStatusName"`
	Serial              int    `json:"serial" yaml:"serial"`
	Assigned            string `json:"assigned" yaml:"assigned"`
	Dispatched          string `json:"dispatched" yaml:"dispatched"`
	Scheduled           bool   `json:"scheduled" yaml:"scheduled"`
	ScheduledDate       string `json:"scheduledDate" yaml:"scheduledDate"`
}

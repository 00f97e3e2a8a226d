package resources

// Customer 客户资源
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Birthday  string
}

// Payload 返回创建请求载荷
func (c *Customer) Payload() map[string]interface{} {
	return map[string]interface{}{
		"firstname": c.FirstName,
		"lastname":  c.LastName,
		"email":     c.Email,
		"birthday":  c.Birthday,
	}
}

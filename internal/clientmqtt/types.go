package clientmqtt

type MQTTConf struct {
	ClientID string // ClientID - уникальное имя клиента для брокеров.
	Schema   string // Schema - тип подключения.
	Host     string // Host - адрес MQTT сервера.
	Port     string // Port - порт MQTT сервера.
	User     string // User - логин для подключения к MQTT серверу.
	Password string // Password - пароль для подключения к MQTT серверу.
	Qos      byte   // Qos - качество обслуживания.
	Prefix   string // Prefix - корень топиков.
	Encoding string // Encoding - кодировка запросов: json или msgpack.
}

// request is one action request taken off the broker.
type request struct {
	topic   string
	payload []byte
}

// wireWrite is a register write as published on <prefix>/writes.
type wireWrite struct {
	Action  string `json:"action" msgpack:"action"`
	Address string `json:"address" msgpack:"address"`
	Value   string `json:"value" msgpack:"value"`
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	assistantFallback = "Disculpa, estoy teniendo dificultades técnicas. Por favor intenta con otra pregunta o contacta directamente al taller al 555-1234."
	assistantThrottle = "Un momento, por favor. Estoy procesando tu consulta anterior."
	assistantPrompt   = "Por favor, escribe tu pregunta sobre mecánica automotriz."

	historyTTL = time.Hour
)

// assistantTopic groups the canned answers for one automotive subject. The
// keywords are matched against the normalized (lowercase, accent-stripped)
// message; first matching topic wins.
type assistantTopic struct {
	name     string
	keywords []string
	answers  []string
}

var assistantTopics = []assistantTopic{
	{
		name:     "aceite",
		keywords: []string{"aceite", "lubricante", "5w30", "sintetico"},
		answers: []string{
			"Cambio de aceite: se recomienda cada 5,000-7,500 km o cada 6 meses. Para motores nuevos usa aceite sintético 5W-30 o 5W-40.",
			"Señales de cambio: color oscuro o negro, textura espesa, olor a quemado, nivel bajo frecuente, o ruidos extraños del motor.",
			"Función del aceite: lubrica piezas internas, reduce fricción, disipa calor y limpia residuos. ¡No retrases el cambio!",
			"Tipos de aceite: sintético (mejor protección), semi-sintético (balance precio-calidad), convencional (económico para autos antiguos).",
		},
	},
	{
		name:     "frenos",
		keywords: []string{"freno", "frena", "pastilla", "disco", "pedal", "chirria"},
		answers: []string{
			"Pastillas de freno: duran 40,000-70,000 km. Señales de desgaste: chirridos metálicos, vibración al frenar, pedal esponjoso.",
			"Líquido de frenos: cambiar cada 2 años. Si el pedal está blando o va hasta el fondo, necesita revisión URGENTE.",
			"Ruido metálico: indica pastillas completamente gastadas rayando los discos. ¡Para inmediatamente y revisa!",
			"Emergencia: si pierdes frenos, usa freno de mano progresivamente, busca superficie rugosa, y apaga motor en neutro.",
		},
	},
	{
		name:     "batería",
		keywords: []string{"bateria", "arranque", "corriente", "terminal", "carga", "puenteo"},
		answers: []string{
			"Señales de batería débil: arranque lento, luces tenues, necesidad de puenteo frecuente, terminales corroídos blancos/verdosos.",
			"Vida útil: 3-5 años promedio. En climas fríos pierde hasta 35% de potencia. Revisar cada año después del 3er año.",
			"Prueba casera: con motor apagado, enciende luces y trata de arrancar. Si las luces se apagan mucho, batería débil.",
			"Mantenimiento: limpiar terminales con bicarbonato, verificar nivel de agua (si no es sellada), asegurar sujeción firme.",
		},
	},
	{
		name:     "neumáticos",
		keywords: []string{"llanta", "neumatico", "goma", "alineacion", "balanceo", "presion", "desgaste"},
		answers: []string{
			"Presión: revisar mensualmente según manual (usualmente 30-35 PSI). Baja presión = mayor consumo + desgaste irregular.",
			"Rotación: cada 10,000 km para desgaste parejo. Profundidad mínima legal 1.6mm, cambiar antes de 3mm para seguridad.",
			"Balanceo y alineación: si vibra el volante = desbalanceo. Si el auto se va a un lado = desalineación. Revisar cada 20,000 km.",
			"Prueba de la moneda: inserta una moneda en la ranura. Si ves toda la cabeza, es hora de cambiar neumáticos.",
		},
	},
	{
		name:     "motor",
		keywords: []string{"motor", "check engine", "humo", "ruido", "golpeteo", "calentamiento"},
		answers: []string{
			"Check Engine: desde tapa de gasolina floja hasta fallas graves. Escanear códigos OBD2 para diagnóstico preciso.",
			"Ruidos anormales: golpeteos (baja presión de aceite), silbidos (fuga de aire), chirridos (correas). ¡Revisión inmediata!",
			"Humo del escape: azul (quema aceite), blanco (refrigerante), negro (mezcla rica de combustible). Todos requieren atención.",
			"Sobrecalentamiento: parar inmediatamente, no abrir el radiador caliente, verificar nivel de refrigerante cuando enfríe.",
		},
	},
	{
		name:     "transmisión",
		keywords: []string{"transmision", "embrague", "automatica", "patina"},
		answers: []string{
			"Transmisión automática: cambiar aceite cada 60,000-100,000 km. Señales: cambios bruscos, resbalones, ruidos.",
			"Transmisión manual: aceite cada 50,000-80,000 km. Problemas: dificultad en cambios, ruidos al engranar, embrague que patina.",
			"Síntomas urgentes: no entra ningún cambio, patinazos, ruidos fuertes, olor a quemado. ¡No manejar hasta revisar!",
		},
	},
	{
		name:     "aire acondicionado",
		keywords: []string{"aire acondicionado", "aire", "clima", "frio", "calor"},
		answers: []string{
			"Mantenimiento AC: cambiar filtro de cabina cada 15,000 km, recargar gas cada 2-3 años, limpiar condensador.",
			"No enfría: puede ser gas bajo, compresor dañado, filtro sucio, o fuga en el sistema. Revisión profesional necesaria.",
			"Consejo: usar el AC 10 minutos cada semana (incluso en invierno) para mantener los sellos lubricados.",
		},
	},
}

// quickResponses answer workshop questions verbatim; checked before the
// knowledge base so "precio del aceite" resolves to prices, not oil advice.
var quickResponses = []struct{ keyword, text string }{
	{"horario", "Horarios de MecaFlow:\n- Lunes a Viernes: 8:00 AM - 6:00 PM\n- Sábados: 9:00 AM - 2:00 PM\n- Domingos: cerrado"},
	{"contacto", "Contacto MecaFlow:\n- Teléfono: 555-1234\n- Email: info@mecaflow.com\n- Dirección: Av. Principal #123\n- WhatsApp: 555-1234"},
	{"cita", "Agendar cita:\n1. Llamar: 555-1234\n2. WhatsApp: 555-1234\n3. Presencial: Av. Principal #123\n4. Email: info@mecaflow.com"},
	{"precio", "Precios aproximados (pueden variar):\n- Cambio de aceite: $25-40\n- Pastillas de frenos: $60-120\n- Batería nueva: $80-150\n- Alineación: $25-35"},
	{"emergencia", "Emergencia mecánica:\n1. Detente en un lugar seguro\n2. Enciende las luces de emergencia\n3. Llama: 555-1234\n4. No fuerces el vehículo"},
}

var (
	assistantGreetings = []string{"hola", "buenos dias", "buenas tardes", "buenas noches", "hey", "saludos"}
	assistantFarewells = []string{"gracias", "bye", "adios", "chao", "hasta luego", "nos vemos"}
)

// symptom patterns that do not name a topic directly but map onto one.
var symptomPatterns = []struct {
	pattern *regexp.Regexp
	topic   string
	note    string
}{
	{regexp.MustCompile(`\b(no arranca|no enciende|no prende)\b`), "batería", "También podría ser un problema de combustible o del motor de arranque."},
	{regexp.MustCompile(`\b(huele|olor)\b.*\b(quemado|aceite)\b`), "aceite", "Si el olor es muy fuerte, detén el vehículo inmediatamente."},
	{regexp.MustCompile(`\b(vibra|tiembla)\b`), "neumáticos", "También podría ser un problema en el motor o los frenos."},
	{regexp.MustCompile(`\b(caliente|temperatura|vapor)\b`), "motor", "Revisa el nivel de refrigerante y el termostato."},
}

const assistantGreetingReply = "¡Hola! Soy el asistente mecánico de MecaFlow. ¿En qué puedo ayudarte hoy?\n\n" +
	"Puedo responder sobre:\n" +
	"- Aceite y lubricantes\n" +
	"- Sistema de frenos\n" +
	"- Batería y sistema eléctrico\n" +
	"- Neumáticos y alineación\n" +
	"- Problemas del motor\n" +
	"- Aire acondicionado\n" +
	"- Transmisión"

const assistantFarewellReply = "¡De nada! Fue un placer ayudarte. Si tienes más preguntas sobre tu vehículo, no dudes en consultarme.\n\n" +
	"MecaFlow, tu taller de confianza."

const assistantDefaultReply = "No estoy seguro de entender tu pregunta.\n\n" +
	"Puedo ayudarte con temas como:\n" +
	"- Mantenimiento preventivo (aceite, frenos, neumáticos)\n" +
	"- Diagnóstico de problemas (motor, batería, transmisión)\n" +
	"- Información del taller (horario, contacto, cita, precio)\n\n" +
	"¿Podrías ser más específico con tu consulta?"

// AssistantService answers workshop questions from a static knowledge base.
// Redis backs a per-session minimum-spacing throttle and the chat history;
// redis failures never surface to the user, the static fallback does.
type AssistantService struct {
	cache   redis.UniversalClient
	logger  *slog.Logger
	spacing time.Duration
	pick    func(n int) int
}

func NewAssistantService(cache redis.UniversalClient, logger *slog.Logger, spacing time.Duration) *AssistantService {
	return &AssistantService{cache: cache, logger: logger, spacing: spacing, pick: rand.Intn}
}

type ChatReply struct {
	Response string `json:"response"`
}

// Reply produces the assistant answer for one message in a session.
func (s *AssistantService) Reply(ctx context.Context, sessionID, message string) *ChatReply {
	if strings.TrimSpace(message) == "" {
		return &ChatReply{Response: assistantPrompt}
	}

	if throttled, failed := s.throttle(ctx, sessionID); failed {
		return &ChatReply{Response: assistantFallback}
	} else if throttled {
		return &ChatReply{Response: assistantThrottle}
	}

	reply := s.respond(normalizeMessage(message))
	s.appendHistory(ctx, sessionID, message, reply)
	return &ChatReply{Response: reply}
}

// Reset clears the session's history and throttle window.
func (s *AssistantService) Reset(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.cache.Del(ctx, historyKey(sessionID), throttleKey(sessionID)).Err(); err != nil {
		s.logger.WarnContext(ctx, "assistant reset failed", slog.String("error", err.Error()))
	}
}

// throttle enforces minimum spacing between messages of one session.
// The second return reports a redis failure.
func (s *AssistantService) throttle(ctx context.Context, sessionID string) (bool, bool) {
	if sessionID == "" || s.spacing <= 0 {
		return false, false
	}
	ok, err := s.cache.SetNX(ctx, throttleKey(sessionID), "1", s.spacing).Result()
	if err != nil {
		s.logger.WarnContext(ctx, "assistant throttle unavailable", slog.String("error", err.Error()))
		return false, true
	}
	return !ok, false
}

func (s *AssistantService) appendHistory(ctx context.Context, sessionID, message, reply string) {
	if sessionID == "" {
		return
	}
	key := historyKey(sessionID)
	pipe := s.cache.TxPipeline()
	pipe.RPush(ctx, key, "user: "+message, "assistant: "+reply)
	pipe.Expire(ctx, key, historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.WarnContext(ctx, "assistant history write failed", slog.String("error", err.Error()))
	}
}

func (s *AssistantService) respond(input string) string {
	if containsAny(input, assistantGreetings) {
		return assistantGreetingReply
	}
	if containsAny(input, assistantFarewells) {
		return assistantFarewellReply
	}
	for _, quick := range quickResponses {
		if strings.Contains(input, quick.keyword) {
			return quick.text
		}
	}
	for _, topic := range assistantTopics {
		if containsAny(input, topic.keywords) {
			answer := topic.answers[s.pick(len(topic.answers))]
			return fmt.Sprintf("%s\n\n¿Tienes alguna pregunta más específica sobre %s?", answer, topic.name)
		}
	}
	for _, symptom := range symptomPatterns {
		if symptom.pattern.MatchString(input) {
			if answer, ok := s.topicAnswer(symptom.topic); ok {
				return answer + "\n\n" + symptom.note
			}
		}
	}
	return assistantDefaultReply
}

func (s *AssistantService) topicAnswer(name string) (string, bool) {
	for _, topic := range assistantTopics {
		if topic.name == name {
			return topic.answers[s.pick(len(topic.answers))], true
		}
	}
	return "", false
}

func containsAny(input string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(input, keyword) {
			return true
		}
	}
	return false
}

// normalizeMessage lowercases and strips Spanish accents so keyword lookup
// tolerates both "batería" and "bateria".
func normalizeMessage(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	replacer := strings.NewReplacer(
		"á", "a", "à", "a", "ä", "a", "â", "a",
		"é", "e", "í", "i", "ó", "o", "ú", "u",
		"ñ", "n",
	)
	return replacer.Replace(lower)
}

func throttleKey(sessionID string) string { return "chat:throttle:" + sessionID }
func historyKey(sessionID string) string  { return "chat:history:" + sessionID }

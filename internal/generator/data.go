package generator

// Spanish given names and surnames. Accents are intentional: email local
// parts are derived from these after diacritics are stripped.
var firstNames = []string{
	"Alejandro", "Álvaro", "Ana", "Andrés", "Antonio", "Beatriz", "Carlos", "Carmen",
	"Cristina", "Daniel", "David", "Elena", "Francisco", "Inés", "Isabel", "Javier",
	"Jesús", "Jorge", "José", "Juan", "Laura", "Lucía", "Luis", "Manuel",
	"María", "Marta", "Miguel", "Mónica", "Nuria", "Pablo", "Paula", "Pedro",
	"Raquel", "Ramón", "Rocío", "Rubén", "Sara", "Sergio", "Sofía", "Víctor",
}

var lastNames = []string{
	"Alonso", "Álvarez", "Blanco", "Castillo", "Cortés", "Delgado", "Díaz", "Domínguez",
	"Fernández", "Gallego", "García", "Garrido", "Gil", "Gómez", "González", "Gutiérrez",
	"Hernández", "Iglesias", "Jiménez", "López", "Marín", "Martín", "Martínez", "Molina",
	"Moreno", "Muñoz", "Navarro", "Núñez", "Ortega", "Pérez", "Ramírez", "Ramos",
	"Rodríguez", "Romero", "Rubio", "Ruiz", "Sánchez", "Serrano", "Torres", "Vázquez",
}

var defaultDomains = []string{"gmail.com", "hotmail.com", "outlook.com", "yahoo.com"}

// words for note sentences
var noteWords = []string{
	"cliente", "habitual", "prefiere", "contacto", "por", "correo", "llamar", "tarde",
	"revisar", "datos", "pendiente", "confirmar", "dirección", "nuevo", "registro", "mañana",
	"interesado", "en", "ofertas", "seguimiento", "semanal", "envío", "factura", "mensual",
	"cambio", "de", "teléfono", "consulta", "resuelta", "visita", "programada", "oficina",
}
